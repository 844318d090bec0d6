package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boxoffice/internal/domain"
	"boxoffice/internal/reconcile"
	"boxoffice/internal/service"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) Latest(ctx context.Context, cityKey string) (*domain.Upload, []reconcile.ParsedOrder, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Upload), args.Get(1).([]reconcile.ParsedOrder), args.Error(2)
}
