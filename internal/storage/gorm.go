package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

var _ Storage = (*GormStorage)(nil)

// GormStorage implements Storage on a gorm database migrated by
// database.Migrate.
type GormStorage struct {
	DB *gorm.DB

	newID IDGenerator
	now   Clock
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{
		DB:    db,
		newID: defaultID,
		now:   defaultClock,
	}
}

func (s *GormStorage) ListJobs(ctx context.Context) ([]models.Job, error) {
	var recs []database.JobRecord
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("seq").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	out := make([]models.Job, 0, len(recs))
	for _, r := range recs {
		out = append(out, jobFromRecord(r))
	}
	return out, nil
}

func (s *GormStorage) GetJob(ctx context.Context, id string) (models.Job, bool, error) {
	var rec database.JobRecord
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Job{}, false, nil
	}
	if err != nil {
		return models.Job{}, false, fmt.Errorf("get job %s: %w", id, err)
	}
	return jobFromRecord(rec), true, nil
}

func (s *GormStorage) CreateJob(ctx context.Context, in models.InsertJob) (models.Job, error) {
	job := newJob(s.newID(), s.now(), in)
	rec := jobToRecord(job)
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *GormStorage) ListApplicationsForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var recs []database.ApplicationRecord
	err := s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("seq").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list applications for job %s: %w", jobID, err)
	}
	return applicationsFromRecords(recs), nil
}

func (s *GormStorage) CreateApplication(ctx context.Context, in models.InsertApplication) (models.Application, error) {
	app := newApplication(s.newID(), s.now(), in)
	rec := applicationToRecord(app)
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

func (s *GormStorage) ListApplications(ctx context.Context) ([]models.Application, error) {
	var recs []database.ApplicationRecord
	if err := s.DB.WithContext(ctx).Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applicationsFromRecords(recs), nil
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStorage) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CountJobs counts every job, active or not. Seeding uses it to leave a
// populated database alone.
func (s *GormStorage) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&database.JobRecord{}).Count(&n).Error
	return n, err
}

func jobToRecord(j models.Job) database.JobRecord {
	return database.JobRecord{
		ID:                 j.ID,
		Title:              j.Title,
		Company:            j.Company,
		Location:           j.Location,
		Type:               j.Type,
		Description:        j.Description,
		Requirements:       j.Requirements,
		Deliverables:       j.Deliverables,
		Technologies:       j.Technologies,
		SalaryMin:          j.SalaryMin.Ptr(),
		SalaryMax:          j.SalaryMax.Ptr(),
		ExperienceLevel:    j.ExperienceLevel,
		CompanyLogo:        j.CompanyLogo.Ptr(),
		InterviewQuestions: j.InterviewQuestions,
		PostedAt:           j.PostedAt,
		IsActive:           j.IsActive,
	}
}

func jobFromRecord(r database.JobRecord) models.Job {
	return models.Job{
		ID:                 r.ID,
		Title:              r.Title,
		Company:            r.Company,
		Location:           r.Location,
		Type:               r.Type,
		Description:        r.Description,
		Requirements:       r.Requirements,
		Deliverables:       r.Deliverables,
		Technologies:       r.Technologies,
		SalaryMin:          models.FromPtr(r.SalaryMin),
		SalaryMax:          models.FromPtr(r.SalaryMax),
		ExperienceLevel:    r.ExperienceLevel,
		CompanyLogo:        models.FromPtr(r.CompanyLogo),
		InterviewQuestions: r.InterviewQuestions,
		PostedAt:           r.PostedAt.UTC(),
		IsActive:           r.IsActive,
	}.Clone()
}

func applicationToRecord(a models.Application) database.ApplicationRecord {
	return database.ApplicationRecord{
		ID:                a.ID,
		JobID:             a.JobID,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Email:             a.Email,
		Phone:             a.Phone,
		Linkedin:          a.Linkedin.Ptr(),
		Portfolio:         a.Portfolio.Ptr(),
		ResumeURL:         a.ResumeURL,
		Experience:        a.Experience,
		CurrentSalary:     a.CurrentSalary.Ptr(),
		ExpectedSalary:    a.ExpectedSalary.Ptr(),
		CoverLetter:       a.CoverLetter,
		StartDate:         a.StartDate.Ptr(),
		WorkAuthorization: a.WorkAuthorization,
		AppliedAt:         a.AppliedAt,
	}
}

func applicationsFromRecords(recs []database.ApplicationRecord) []models.Application {
	out := make([]models.Application, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.Application{
			ID:                r.ID,
			JobID:             r.JobID,
			FirstName:         r.FirstName,
			LastName:          r.LastName,
			Email:             r.Email,
			Phone:             r.Phone,
			Linkedin:          models.FromPtr(r.Linkedin),
			Portfolio:         models.FromPtr(r.Portfolio),
			ResumeURL:         r.ResumeURL,
			Experience:        r.Experience,
			CurrentSalary:     models.FromPtr(r.CurrentSalary),
			ExpectedSalary:    models.FromPtr(r.ExpectedSalary),
			CoverLetter:       r.CoverLetter,
			StartDate:         models.FromPtr(r.StartDate),
			WorkAuthorization: r.WorkAuthorization,
			AppliedAt:         r.AppliedAt.UTC(),
		})
	}
	return out
}
