package port

import (
	"context"

	"github.com/google/uuid"

	"boxoffice/internal/domain"
)

// EventRepository defines the contract for event and class-roster persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByCityKey(ctx context.Context, cityKey string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListClasses(ctx context.Context, eventID uuid.UUID) ([]domain.EventClass, error)
}

// UploadRepository defines the contract for raw export persistence. Each
// city keeps exactly one current upload; Upsert replaces it atomically.
type UploadRepository interface {
	Upsert(ctx context.Context, upload *domain.Upload) error
	GetLatestByCity(ctx context.Context, cityKey string) (*domain.Upload, error)
}
