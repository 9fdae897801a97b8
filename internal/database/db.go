package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// Connect opens the postgres database behind dsn and migrates the
// jobs and applications tables. A database that is still starting gets a
// few attempts with exponential backoff.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	err := retry(ctx, connectAttempts, connectBackoff, func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Println("Database connection established")

	// Creates or updates the tables to match the records.
	log.Println("Running Migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables for every record type.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&JobRecord{}, &ApplicationRecord{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// retry executes f with exponential backoff until it succeeds, attempts
// run out or ctx is done.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		log.Printf("⚠️ Database not ready: %v. Retrying in %v...", err, sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
