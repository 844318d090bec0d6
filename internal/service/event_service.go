package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"boxoffice/internal/domain"
	"boxoffice/internal/port"
)

// EventService defines the event registry contract.
type EventService interface {
	List(ctx context.Context) ([]domain.Event, error)
	GetByCityKey(ctx context.Context, cityKey string) (*domain.Event, error)
	Roster(ctx context.Context, cityKey string) ([]domain.EventClass, error)
	// SeedCities ensures an event exists for every configured city key.
	// Existing events are left untouched; the table is authoritative.
	SeedCities(ctx context.Context, cities map[string]string) error
}

type eventService struct {
	eventRepo port.EventRepository
}

// NewEventService creates a new EventService implementation.
func NewEventService(eventRepo port.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("eventService.List: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByCityKey(ctx context.Context, cityKey string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByCityKey(ctx, cityKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownCity
		}
		return nil, fmt.Errorf("eventService.GetByCityKey: %w", err)
	}
	return event, nil
}

func (s *eventService) Roster(ctx context.Context, cityKey string) ([]domain.EventClass, error) {
	event, err := s.GetByCityKey(ctx, cityKey)
	if err != nil {
		return nil, err
	}
	classes, err := s.eventRepo.ListClasses(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("eventService.Roster: %w", err)
	}
	return classes, nil
}

func (s *eventService) SeedCities(ctx context.Context, cities map[string]string) error {
	for cityKey, sourceLabel := range cities {
		_, err := s.eventRepo.GetByCityKey(ctx, cityKey)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("eventService.SeedCities: %w", err)
		}

		event := &domain.Event{
			ID:          uuid.New(),
			CityKey:     cityKey,
			Name:        sourceLabel,
			SourceLabel: sourceLabel,
			IsActive:    true,
		}
		if err := s.eventRepo.Create(ctx, event); err != nil {
			if errors.Is(err, domain.ErrDuplicateCityKey) {
				continue
			}
			return fmt.Errorf("eventService.SeedCities: %w", err)
		}
		log.Printf("seeded event %q (source label %q)", cityKey, sourceLabel)
	}
	return nil
}
