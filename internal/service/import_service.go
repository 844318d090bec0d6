package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"boxoffice/internal/config"
	"boxoffice/internal/domain"
	"boxoffice/internal/port"
	"boxoffice/internal/reconcile"
)

// ImportInput is the DTO for sales export import requests.
type ImportInput struct {
	CityKey  string
	FileName string
	Size     int64
	Reader   io.Reader
}

// ImportResult pairs the stored upload with the records it produced.
type ImportResult struct {
	Upload  *domain.Upload
	Records []reconcile.ParsedOrder
}

// archiveURLExpiry bounds how long a presigned link to an archived
// original export stays valid.
const archiveURLExpiry = 3600

// ImportService defines the sales export import contract. Each import fully
// replaces the city's current dataset; there are no partial or incremental
// imports.
type ImportService interface {
	Import(ctx context.Context, input ImportInput) (*ImportResult, error)
	// Latest re-parses the city's stored export and returns the reconciled
	// records alongside the upload metadata.
	Latest(ctx context.Context, cityKey string) (*domain.Upload, []reconcile.ParsedOrder, error)
}

type importService struct {
	uploadRepo port.UploadRepository
	eventRepo  port.EventRepository
	storage    port.ObjectStorage
	uploadCfg  *config.UploadConfig
	s3Cfg      *config.S3Config
}

// NewImportService creates a new ImportService implementation. storage may
// be nil, which disables archival of original export files.
func NewImportService(
	uploadRepo port.UploadRepository,
	eventRepo port.EventRepository,
	storage port.ObjectStorage,
	uploadCfg *config.UploadConfig,
	s3Cfg *config.S3Config,
) ImportService {
	return &importService{
		uploadRepo: uploadRepo,
		eventRepo:  eventRepo,
		storage:    storage,
		uploadCfg:  uploadCfg,
		s3Cfg:      s3Cfg,
	}
}

func (s *importService) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	event, err := s.eventRepo.GetByCityKey(ctx, input.CityKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownCity
		}
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	if !domain.AllowedUploadExtensions[ext] {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// The size ceiling is enforced at this boundary; the engine itself does
	// not bound input. Read one byte past the limit to catch liars.
	raw, err := io.ReadAll(io.LimitReader(input.Reader, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("importService.Import: reading export: %w", err)
	}
	if int64(len(raw)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	text := string(raw)

	knownLabels, err := s.knownSourceLabels(ctx)
	if err != nil {
		return nil, err
	}

	records, err := reconcile.Parse(text, event.SourceLabel, knownLabels)
	if err != nil {
		return nil, err
	}

	// Zero records with a well-formed schema usually means the staff picked
	// the wrong city: the export parses but under another event's label.
	if len(records) == 0 {
		unfiltered, uerr := reconcile.Parse(text, "", knownLabels)
		if uerr == nil && len(unfiltered) > 0 {
			return nil, domain.ErrWrongCityFile
		}
	}

	upload := &domain.Upload{
		ID:          uuid.New(),
		EventID:     event.ID,
		CityKey:     event.CityKey,
		FileName:    input.FileName,
		FileSize:    int64(len(raw)),
		RawText:     text,
		RecordCount: len(records),
	}

	if s.storage != nil && s.s3Cfg.Bucket != "" {
		s3Key := fmt.Sprintf("events/%s/uploads/%s/%s", event.CityKey, upload.ID, input.FileName)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3Cfg.Bucket,
			Key:         s3Key,
			Body:        bytes.NewReader(raw),
			ContentType: "text/csv",
			Size:        int64(len(raw)),
		})
		if err != nil {
			// Archival is best-effort; the database copy is authoritative.
			log.Printf("importService.Import: archiving %s failed: %v", s3Key, err)
		} else {
			upload.S3Bucket = s.s3Cfg.Bucket
			upload.S3Key = s3Key
		}
	}

	if err := s.uploadRepo.Upsert(ctx, upload); err != nil {
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	log.Printf("importService.Import: stored %s export %q (%d bytes, %d records)",
		event.CityKey, input.FileName, len(raw), len(records))

	return &ImportResult{Upload: upload, Records: records}, nil
}

func (s *importService) Latest(ctx context.Context, cityKey string) (*domain.Upload, []reconcile.ParsedOrder, error) {
	event, err := s.eventRepo.GetByCityKey(ctx, cityKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrUnknownCity
		}
		return nil, nil, fmt.Errorf("importService.Latest: %w", err)
	}

	upload, err := s.uploadRepo.GetLatestByCity(ctx, cityKey)
	if err != nil {
		return nil, nil, err
	}

	knownLabels, err := s.knownSourceLabels(ctx)
	if err != nil {
		return nil, nil, err
	}

	records, err := reconcile.Parse(upload.RawText, event.SourceLabel, knownLabels)
	if err != nil {
		return nil, nil, err
	}

	if s.storage != nil && upload.S3Key != "" {
		url, perr := s.storage.GetPresignedURL(ctx, upload.S3Bucket, upload.S3Key, archiveURLExpiry)
		if perr != nil {
			log.Printf("importService.Latest: presigning %s failed: %v", upload.S3Key, perr)
		} else {
			upload.ArchiveURL = url
		}
	}
	return upload, records, nil
}

func (s *importService) knownSourceLabels(ctx context.Context) ([]string, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("importService: listing events: %w", err)
	}
	labels := make([]string, 0, len(events))
	for _, e := range events {
		labels = append(labels, e.SourceLabel)
	}
	return labels, nil
}
