package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"boxoffice/internal/domain"
	"boxoffice/internal/port"
)

type eventRepo struct {
	db *sqlx.DB
}

// NewEventRepo creates a new PostgreSQL-backed EventRepository.
func NewEventRepo(db *sqlx.DB) port.EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *domain.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	query := `INSERT INTO events
		(id, city_key, name, source_label, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.CityKey, event.Name, event.SourceLabel,
		event.IsActive, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCityKey
		}
		return fmt.Errorf("eventRepo.Create: %w", err)
	}
	return nil
}

func (r *eventRepo) GetByCityKey(ctx context.Context, cityKey string) (*domain.Event, error) {
	var event domain.Event
	err := r.db.GetContext(ctx, &event,
		"SELECT * FROM events WHERE city_key = $1", cityKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("eventRepo.GetByCityKey: %w", err)
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.SelectContext(ctx, &events,
		"SELECT * FROM events WHERE is_active = true ORDER BY city_key")
	if err != nil {
		return nil, fmt.Errorf("eventRepo.List: %w", err)
	}
	return events, nil
}

func (r *eventRepo) ListClasses(ctx context.Context, eventID uuid.UUID) ([]domain.EventClass, error) {
	var classes []domain.EventClass
	err := r.db.SelectContext(ctx, &classes,
		"SELECT * FROM event_classes WHERE event_id = $1 ORDER BY class_name", eventID)
	if err != nil {
		return nil, fmt.Errorf("eventRepo.ListClasses: %w", err)
	}
	return classes, nil
}
