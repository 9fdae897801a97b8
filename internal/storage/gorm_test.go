package storage

import (
	"context"
	"os"
	"testing"

	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGormStorage needs a disposable postgres database.
func newGormStorage(t *testing.T) *GormStorage {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Exec("TRUNCATE jobs, applications").Error)

	s := NewGormStorage(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGormStorageJobs(t *testing.T) {
	s := newGormStorage(t)
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	in := insertJob("Backend Developer")
	in.SalaryMin = models.Some(80000)
	in.CompanyLogo = models.Some("https://example.com/logo.png")
	created, err := s.CreateJob(ctx, in)
	require.NoError(t, err)

	hidden := insertJob("Hidden")
	hidden.IsActive = models.Some(false)
	_, err = s.CreateJob(ctx, hidden)
	require.NoError(t, err)

	got, ok, err := s.GetJob(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, models.Some(80000), got.SalaryMin)
	assert.False(t, got.SalaryMax.IsSet())
	assert.Equal(t, created.Technologies, got.Technologies)
	assert.Empty(t, got.Deliverables)

	_, ok, err = s.GetJob(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	jobs, err := s.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, created.ID, jobs[0].ID)

	n, err := s.CountJobs(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	seeded, err := Seed(ctx, s, []map[string]any{seedCandidate("Ignored")})
	require.NoError(t, err)
	assert.Zero(t, seeded)
}

func TestGormStorageApplications(t *testing.T) {
	s := newGormStorage(t)
	ctx := context.Background()

	in := insertApplication("job-a", "one@example.com")
	in.Portfolio = models.Some("")
	a1, err := s.CreateApplication(ctx, in)
	require.NoError(t, err)
	_, err = s.CreateApplication(ctx, insertApplication("job-b", "two@example.com"))
	require.NoError(t, err)

	forA, err := s.ListApplicationsForJob(ctx, "job-a")
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, a1.ID, forA[0].ID)
	assert.Equal(t, models.Some(""), forA[0].Portfolio)
	assert.False(t, forA[0].Linkedin.IsSet())

	all, err := s.ListApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
