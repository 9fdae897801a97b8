package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/schema"
)

type jobCounter interface {
	CountJobs(ctx context.Context) (int64, error)
}

// Seed validates each candidate and creates it. A store that can count
// its jobs and already has some is left untouched. It returns the number
// of jobs created.
func Seed(ctx context.Context, st Storage, candidates []map[string]any) (int, error) {
	if c, ok := st.(jobCounter); ok {
		n, err := c.CountJobs(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed: count jobs: %w", err)
		}
		if n > 0 {
			log.Printf("Seed skipped: store already holds %d jobs", n)
			return 0, nil
		}
	}

	// Validate everything first so a bad fixture creates nothing.
	inserts := make([]models.InsertJob, 0, len(candidates))
	for i, c := range candidates {
		in, err := schema.ValidateInsertJob(c)
		if err != nil {
			return 0, fmt.Errorf("seed job %d: %w", i, err)
		}
		inserts = append(inserts, in)
	}

	for i, in := range inserts {
		if _, err := st.CreateJob(ctx, in); err != nil {
			return i, fmt.Errorf("seed job %d: %w", i, err)
		}
	}
	return len(inserts), nil
}
