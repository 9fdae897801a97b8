package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/justsurfingit/job-board/internal/storage"
)

// ErrJobNotFound is returned for an unknown job id.
var ErrJobNotFound = errors.New("job not found")

type JobService struct {
	Store storage.Storage
}

func NewJobService(st storage.Storage) *JobService {
	return &JobService{
		Store: st,
	}
}

func (s *JobService) ListJobs(ctx context.Context) ([]models.Job, error) {
	return s.Store.ListJobs(ctx)
}

func (s *JobService) GetJob(ctx context.Context, id string) (models.Job, error) {
	job, ok, err := s.Store.GetJob(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if !ok {
		return models.Job{}, ErrJobNotFound
	}
	return job, nil
}

// CreateJob validates an untyped candidate and stores it.
func (s *JobService) CreateJob(ctx context.Context, candidate map[string]any) (models.Job, error) {
	in, err := schema.ValidateInsertJob(candidate)
	if err != nil {
		return models.Job{}, err
	}
	return s.Store.CreateJob(ctx, in)
}

// ApplicationsForJob does not require the job to exist.
func (s *JobService) ApplicationsForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	return s.Store.ListApplicationsForJob(ctx, jobID)
}

// Ping reports whether the store is reachable.
func (s *JobService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}
