package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boxoffice/internal/domain"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventService) GetByCityKey(ctx context.Context, cityKey string) (*domain.Event, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) Roster(ctx context.Context, cityKey string) ([]domain.EventClass, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventClass), args.Error(1)
}

func (m *MockEventService) SeedCities(ctx context.Context, cities map[string]string) error {
	args := m.Called(ctx, cities)
	return args.Error(0)
}
