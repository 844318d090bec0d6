package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"boxoffice/internal/domain"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ClassSummary(ctx context.Context, cityKey string) ([]domain.ClassSummaryRow, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassSummaryRow), args.Error(1)
}

func (m *MockReportService) Totals(ctx context.Context, cityKey string) (*domain.TotalsSummary, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TotalsSummary), args.Error(1)
}

func (m *MockReportService) Customers(ctx context.Context, cityKey string) ([]domain.CustomerSummaryRow, error) {
	args := m.Called(ctx, cityKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerSummaryRow), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, cityKey string, w io.Writer) error {
	args := m.Called(ctx, cityKey, w)
	return args.Error(0)
}
