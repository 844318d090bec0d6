package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"boxoffice/internal/domain"
	"boxoffice/internal/port"
)

type uploadRepo struct {
	db *sqlx.DB
}

// NewUploadRepo creates a new PostgreSQL-backed UploadRepository.
func NewUploadRepo(db *sqlx.DB) port.UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Upsert(ctx context.Context, upload *domain.Upload) error {
	upload.UploadedAt = time.Now().UTC()

	// One current upload per city; a new import replaces it wholesale.
	query := `INSERT INTO uploads
		(id, event_id, city_key, file_name, file_size, raw_text, record_count,
		 s3_bucket, s3_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (city_key) DO UPDATE SET
		 id = EXCLUDED.id,
		 event_id = EXCLUDED.event_id,
		 file_name = EXCLUDED.file_name,
		 file_size = EXCLUDED.file_size,
		 raw_text = EXCLUDED.raw_text,
		 record_count = EXCLUDED.record_count,
		 s3_bucket = EXCLUDED.s3_bucket,
		 s3_key = EXCLUDED.s3_key,
		 uploaded_at = EXCLUDED.uploaded_at`

	_, err := r.db.ExecContext(ctx, query,
		upload.ID, upload.EventID, upload.CityKey, upload.FileName, upload.FileSize,
		upload.RawText, upload.RecordCount, upload.S3Bucket, upload.S3Key, upload.UploadedAt)
	if err != nil {
		return fmt.Errorf("uploadRepo.Upsert: %w", err)
	}
	return nil
}

func (r *uploadRepo) GetLatestByCity(ctx context.Context, cityKey string) (*domain.Upload, error) {
	var upload domain.Upload
	err := r.db.GetContext(ctx, &upload,
		"SELECT * FROM uploads WHERE city_key = $1", cityKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoUpload
		}
		return nil, fmt.Errorf("uploadRepo.GetLatestByCity: %w", err)
	}
	return &upload, nil
}
