package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"boxoffice/internal/csvexport"
	"boxoffice/internal/domain"
	"boxoffice/internal/port"
	"boxoffice/internal/reconcile"
)

// ReportService defines the reporting contract. Reports are computed on
// read from the city's most-recent reconciled export; nothing is
// pre-aggregated.
type ReportService interface {
	ClassSummary(ctx context.Context, cityKey string) ([]domain.ClassSummaryRow, error)
	Totals(ctx context.Context, cityKey string) (*domain.TotalsSummary, error)
	Customers(ctx context.Context, cityKey string) ([]domain.CustomerSummaryRow, error)
	ExportCSV(ctx context.Context, cityKey string, w io.Writer) error
}

type reportService struct {
	importSvc ImportService
	eventRepo port.EventRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(importSvc ImportService, eventRepo port.EventRepository) ReportService {
	return &reportService{importSvc: importSvc, eventRepo: eventRepo}
}

func (s *reportService) ClassSummary(ctx context.Context, cityKey string) ([]domain.ClassSummaryRow, error) {
	event, err := s.eventRepo.GetByCityKey(ctx, cityKey)
	if err != nil {
		return nil, domain.ErrUnknownCity
	}
	_, records, err := s.importSvc.Latest(ctx, cityKey)
	if err != nil {
		return nil, err
	}

	// Pre-seed every rostered class with zero counts so classes that sold
	// nothing still show up in the dashboard.
	roster, err := s.eventRepo.ListClasses(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("reportService.ClassSummary: %w", err)
	}

	byClass := make(map[string]*domain.ClassSummaryRow)
	for _, c := range roster {
		name := reconcile.CanonicalClassName(c.ClassName)
		byClass[name] = &domain.ClassSummaryRow{ClassName: name, Capacity: c.Capacity}
	}

	for _, r := range records {
		row, ok := byClass[r.ClassName]
		if !ok {
			row = &domain.ClassSummaryRow{ClassName: r.ClassName}
			byClass[r.ClassName] = row
		}
		row.Attendance += r.Quantity
		row.Revenue += reconcile.AllocatedRevenue(r.LineItemSubtotal, r.OrderSubTotal, r.OrderTaxAmount)
	}

	rows := make([]domain.ClassSummaryRow, 0, len(byClass))
	for _, row := range byClass {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClassName < rows[j].ClassName })
	return rows, nil
}

func (s *reportService) Totals(ctx context.Context, cityKey string) (*domain.TotalsSummary, error) {
	_, records, err := s.importSvc.Latest(ctx, cityKey)
	if err != nil {
		return nil, err
	}

	totals := &domain.TotalsSummary{LineItemCount: len(records)}
	seenOrders := make(map[string]bool)
	for _, r := range records {
		if !seenOrders[r.OrderID] {
			seenOrders[r.OrderID] = true
			totals.OrderCount++
			// Order-level tax is duplicated on every line; count it once.
			totals.TaxCollected += r.OrderTaxAmount
		}
		totals.Attendance += r.Quantity
		totals.GrossSales += r.LineItemSubtotal
		totals.Revenue += reconcile.AllocatedRevenue(r.LineItemSubtotal, r.OrderSubTotal, r.OrderTaxAmount)
	}
	return totals, nil
}

func (s *reportService) Customers(ctx context.Context, cityKey string) ([]domain.CustomerSummaryRow, error) {
	_, records, err := s.importSvc.Latest(ctx, cityKey)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]*domain.CustomerSummaryRow)
	for _, r := range records {
		row, ok := byEmail[r.CustomerEmail]
		if !ok {
			row = &domain.CustomerSummaryRow{
				CustomerName:  r.CustomerName,
				CustomerEmail: r.CustomerEmail,
			}
			byEmail[r.CustomerEmail] = row
		}
		row.Visits += r.Quantity
		row.Spend += reconcile.AllocatedRevenue(r.LineItemSubtotal, r.OrderSubTotal, r.OrderTaxAmount)
	}

	rows := make([]domain.CustomerSummaryRow, 0, len(byEmail))
	for _, row := range byEmail {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Spend != rows[j].Spend {
			return rows[i].Spend > rows[j].Spend
		}
		return rows[i].CustomerEmail < rows[j].CustomerEmail
	})
	return rows, nil
}

func (s *reportService) ExportCSV(ctx context.Context, cityKey string, w io.Writer) error {
	_, records, err := s.importSvc.Latest(ctx, cityKey)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	if err := cw.WriteOrders(records); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	return nil
}
