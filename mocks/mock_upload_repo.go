package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boxoffice/internal/domain"
)

type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) Upsert(ctx context.Context, upload *domain.Upload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockUploadRepo) GetLatestByCity(ctx context.Context, cityKey string) (*domain.Upload, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}
