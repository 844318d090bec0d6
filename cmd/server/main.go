package main

import (
	"context"
	"fmt"
	"log"

	"boxoffice/internal/config"
	"boxoffice/internal/handler"
	"boxoffice/internal/port"
	"boxoffice/internal/repository/postgres"
	"boxoffice/internal/router"
	"boxoffice/internal/service"
	s3storage "boxoffice/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	eventRepo := postgres.NewEventRepo(db)
	uploadRepo := postgres.NewUploadRepo(db)

	// Initialize optional archive storage
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	eventSvc := service.NewEventService(eventRepo)
	importSvc := service.NewImportService(uploadRepo, eventRepo, storage, &cfg.Upload, &cfg.S3)
	reportSvc := service.NewReportService(importSvc, eventRepo)

	// Ensure configured cities exist
	if err := eventSvc.SeedCities(context.Background(), cfg.Events.Cities); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	importH := handler.NewImportHandler(importSvc)
	reportH := handler.NewReportHandler(reportSvc)
	eventH := handler.NewEventHandler(eventSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, importH, reportH, eventH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
