package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"maps"

	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/upload"
)

// sniffLen matches the default read limit of the mimetype detector.
const sniffLen = 3072

// ResumeStore persists uploaded resumes and returns their URL.
type ResumeStore interface {
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	Remove(url string) error
}

// Resume is an uploaded file as received from the client.
type Resume struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ApplicationService struct {
	Store   storage.Storage
	Resumes ResumeStore
	Policy  upload.Policy
	Events  events.Publisher
}

func NewApplicationService(st storage.Storage, resumes ResumeStore, policy upload.Policy, pub events.Publisher) *ApplicationService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &ApplicationService{
		Store:   st,
		Resumes: resumes,
		Policy:  policy,
		Events:  pub,
	}
}

// Submit checks and stores the resume, then validates the form fields
// with the resume URL added and creates the application. Any rejection
// happens before the application is stored.
func (s *ApplicationService) Submit(ctx context.Context, fields map[string]any, resume *Resume) (models.Application, error) {
	if resume == nil || resume.Content == nil {
		return models.Application{}, upload.ErrMissingFile
	}
	if err := s.Policy.Check(resume.Filename, resume.ContentType, resume.Size); err != nil {
		return models.Application{}, err
	}

	br := bufio.NewReaderSize(resume.Content, sniffLen)
	head, _ := br.Peek(sniffLen)
	if err := s.Policy.Sniff(head, resume.Filename); err != nil {
		return models.Application{}, err
	}

	url, err := s.Resumes.Save(ctx, br, resume.Filename)
	if err != nil {
		return models.Application{}, fmt.Errorf("store resume: %w", err)
	}

	candidate := maps.Clone(fields)
	if candidate == nil {
		candidate = make(map[string]any)
	}
	candidate["resumeUrl"] = url

	in, err := schema.ValidateInsertApplication(candidate)
	if err != nil {
		s.discard(url)
		return models.Application{}, err
	}

	app, err := s.Store.CreateApplication(ctx, in)
	if err != nil {
		s.discard(url)
		return models.Application{}, fmt.Errorf("create application: %w", err)
	}
	log.Printf("📨 Application %s stored for job %s", app.ID, app.JobID)

	if err := s.Events.PublishApplicationCreated(ctx, app); err != nil {
		log.Printf("⚠️  Application %s: event not published: %v", app.ID, err)
	}
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	return s.Store.ListApplications(ctx)
}

// discard removes an upload that no application refers to.
func (s *ApplicationService) discard(url string) {
	if err := s.Resumes.Remove(url); err != nil {
		log.Printf("⚠️  Orphaned resume %s not removed: %v", url, err)
	}
}
