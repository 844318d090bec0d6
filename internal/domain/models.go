package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents one city's pop-up event whose sales are reported on.
// SourceLabel is the exact source-name string the export must carry for a
// row to belong to this event.
type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CityKey     string    `db:"city_key" json:"city_key"`
	Name        string    `db:"name" json:"name"`
	SourceLabel string    `db:"source_label" json:"source_label"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EventClass is a roster entry for a class offered at an event. The roster
// pre-seeds report rows so a class with zero sales still appears.
type EventClass struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	ClassName string    `db:"class_name" json:"class_name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Upload stores the most-recent raw sales export for an event. RawText is
// authoritative; reports re-parse it on read. RecordCount is the number of
// reconciled line items the export produced at import time.
type Upload struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	CityKey     string    `db:"city_key" json:"city_key"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	RawText     string    `db:"raw_text" json:"-"`
	RecordCount int       `db:"record_count" json:"record_count"`
	S3Bucket    string    `db:"s3_bucket" json:"s3_bucket,omitempty"`
	S3Key       string    `db:"s3_key" json:"s3_key,omitempty"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`

	// ArchiveURL is a short-lived presigned link to the archived original
	// file. Populated on read, never stored.
	ArchiveURL string `db:"-" json:"archive_url,omitempty"`
}
