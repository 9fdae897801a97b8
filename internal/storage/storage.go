// Package storage holds the job and application collections.
//
// Storage is the capability set the handlers depend on. MemStorage is the
// reference implementation and loses everything on restart; GormStorage
// keeps the same contract on top of a database.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/models"
)

// Storage is safe for concurrent use. Implementations generate ids and
// timestamps themselves; inputs are assumed to be validated already.
type Storage interface {
	// ListJobs returns active jobs in insertion order.
	ListJobs(ctx context.Context) ([]models.Job, error)
	// GetJob reports false, not an error, for an unknown id.
	GetJob(ctx context.Context, id string) (models.Job, bool, error)
	CreateJob(ctx context.Context, in models.InsertJob) (models.Job, error)

	// ListApplicationsForJob does not check that jobID exists.
	ListApplicationsForJob(ctx context.Context, jobID string) ([]models.Application, error)
	CreateApplication(ctx context.Context, in models.InsertApplication) (models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)

	Ping(ctx context.Context) error
	Close() error
}

// IDGenerator returns a fresh identifier on every call.
type IDGenerator func() string

// Clock returns the creation timestamp for new records.
type Clock func() time.Time

func defaultID() string { return uuid.NewString() }

func defaultClock() time.Time { return time.Now().UTC() }

// newJob fills the server generated fields of a job.
func newJob(id string, now time.Time, in models.InsertJob) models.Job {
	return models.Job{
		ID:                 id,
		Title:              in.Title,
		Company:            in.Company,
		Location:           in.Location,
		Type:               in.Type,
		Description:        in.Description,
		Requirements:       in.Requirements,
		Deliverables:       in.Deliverables,
		Technologies:       in.Technologies,
		SalaryMin:          in.SalaryMin,
		SalaryMax:          in.SalaryMax,
		ExperienceLevel:    in.ExperienceLevel,
		CompanyLogo:        in.CompanyLogo,
		InterviewQuestions: in.InterviewQuestions,
		PostedAt:           now,
		IsActive:           in.IsActive.Or(true),
	}.Clone()
}

func newApplication(id string, now time.Time, in models.InsertApplication) models.Application {
	return models.Application{
		ID:                id,
		JobID:             in.JobID,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		Linkedin:          in.Linkedin,
		Portfolio:         in.Portfolio,
		ResumeURL:         in.ResumeURL,
		Experience:        in.Experience,
		CurrentSalary:     in.CurrentSalary,
		ExpectedSalary:    in.ExpectedSalary,
		CoverLetter:       in.CoverLetter,
		StartDate:         in.StartDate,
		WorkAuthorization: in.WorkAuthorization,
		AppliedAt:         now,
	}
}
