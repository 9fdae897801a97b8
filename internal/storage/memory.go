package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/justsurfingit/job-board/internal/models"
)

var _ Storage = (*MemStorage)(nil)

// MemStorage keeps both collections in process memory. Records are
// copied on the way in and out so callers never alias stored data.
type MemStorage struct {
	mu sync.RWMutex

	jobs     map[string]models.Job
	jobOrder []string

	applications     map[string]models.Application
	applicationOrder []string

	newID IDGenerator
	now   Clock
}

// MemOption configures a MemStorage.
type MemOption func(*MemStorage)

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen IDGenerator) MemOption {
	return func(m *MemStorage) { m.newID = gen }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) MemOption {
	return func(m *MemStorage) { m.now = c }
}

// NewMemStorage returns an empty store.
func NewMemStorage(opts ...MemOption) *MemStorage {
	m := &MemStorage{
		jobs:         make(map[string]models.Job),
		applications: make(map[string]models.Application),
		newID:        defaultID,
		now:          defaultClock,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemStorage) ListJobs(_ context.Context) ([]models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Job, 0, len(m.jobOrder))
	for _, id := range m.jobOrder {
		j := m.jobs[id]
		if !j.IsActive {
			continue
		}
		out = append(out, j.Clone())
	}
	return out, nil
}

func (m *MemStorage) GetJob(_ context.Context, id string) (models.Job, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return models.Job{}, false, nil
	}
	return j.Clone(), true, nil
}

func (m *MemStorage) CreateJob(_ context.Context, in models.InsertJob) (models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.freshID(func(id string) bool { _, taken := m.jobs[id]; return taken })
	if err != nil {
		return models.Job{}, err
	}
	j := newJob(id, m.now(), in)
	m.jobs[id] = j
	m.jobOrder = append(m.jobOrder, id)
	return j.Clone(), nil
}

func (m *MemStorage) ListApplicationsForJob(_ context.Context, jobID string) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Application, 0)
	for _, id := range m.applicationOrder {
		if a := m.applications[id]; a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStorage) CreateApplication(_ context.Context, in models.InsertApplication) (models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.freshID(func(id string) bool { _, taken := m.applications[id]; return taken })
	if err != nil {
		return models.Application{}, err
	}
	a := newApplication(id, m.now(), in)
	m.applications[id] = a
	m.applicationOrder = append(m.applicationOrder, id)
	return a, nil
}

func (m *MemStorage) ListApplications(_ context.Context) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Application, 0, len(m.applicationOrder))
	for _, id := range m.applicationOrder {
		out = append(out, m.applications[id])
	}
	return out, nil
}

// Ping always succeeds.
func (m *MemStorage) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MemStorage) Close() error { return nil }

// freshID must be called with mu held.
func (m *MemStorage) freshID(taken func(string) bool) (string, error) {
	const attempts = 3
	for i := 0; i < attempts; i++ {
		id := m.newID()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("storage: id generator produced no unused id after %d attempts", attempts)
}
