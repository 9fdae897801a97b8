package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/fixtures"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/upload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// 2. Storage
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal("Storage failed to start: ", err)
	}
	defer store.Close()

	if cfg.SeedJobs {
		seed, err := fixtures.LoadJobs(cfg.SeedFile)
		if err != nil {
			log.Fatal("Error loading seed jobs: ", err)
		}
		n, err := storage.Seed(ctx, store, seed)
		if err != nil {
			log.Fatal("Seeding failed: ", err)
		}
		if n > 0 {
			log.Printf("🌱 Seeded %d jobs", n)
		}
	}

	// 3. Uploads and events
	resumes, err := upload.NewDiskStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatal("Upload directory unavailable: ", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		np, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Printf("⚠️  Application events disabled: %v", err)
		} else {
			log.Printf("✅ Publishing application events to %s", cfg.NATSSubject)
			publisher = np
		}
	}
	defer publisher.Close()

	// 4. Services
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("⚠️  Job extraction disabled: %v", err)
		llmService = &services.LLMService{}
	}
	jobService := services.NewJobService(store)
	applicationService := services.NewApplicationService(store, resumes, cfg.UploadPolicy(), publisher)

	// 5. Handlers and router
	jobHandler := handlers.NewJobHandler(jobService, llmService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	r := handlers.NewRouter(handlers.RouterConfig{
		CORSOrigins:        cfg.CORSOrigins,
		UploadDir:          cfg.UploadDir,
		UploadURLPrefix:    cfg.UploadURLPrefix,
		MaxMultipartMemory: 8 << 20,
	}, jobHandler, applicationHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Shutdown: %v", err)
	}
}

// openStorage picks postgres when a DSN is configured and memory otherwise.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.DatabaseURL == "" {
		log.Println("💾 Using in-memory storage")
		return storage.NewMemStorage(), nil
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Println("🐘 Using postgres storage")
	return storage.NewGormStorage(db), nil
}
