package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobsDefaults(t *testing.T) {
	jobs, err := LoadJobs("")
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	var titles []string
	for _, c := range jobs {
		job, err := schema.ValidateInsertJob(c)
		require.NoError(t, err)
		titles = append(titles, job.Title)
	}
	assert.Equal(t, []string{"MERN Stack Developer", "Frontend Developer", "Backend Developer"}, titles)
}

func TestLoadJobsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: Go Developer\n  salaryMin: 1\n"), 0o644))

	jobs, err := LoadJobs(path)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0]["title"])
	assert.Equal(t, 1, jobs[0]["salaryMin"])
}

func TestLoadJobsErrors(t *testing.T) {
	_, err := LoadJobs(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed"), 0o644))
	_, err = LoadJobs(path)
	assert.Error(t, err)
}
