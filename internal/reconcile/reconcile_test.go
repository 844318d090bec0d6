package reconcile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/reconcile"
)

const (
	sourceDC      = "SWEATCON DC"
	sourceAtlanta = "SWEATCON ATLANTA"
)

var knownSources = []string{sourceDC, sourceAtlanta}

const headerLine = "Order ID,Customer Name,Email,Phone,Status,Source," +
	"Order Date,Order Time,Class Name,Quantity,Price," +
	"Lineitem Subtotal,Order Subtotal,Order Tax Amount,Order Total Amount"

// exportRow builds one data line in header column order.
func exportRow(fields ...string) string {
	return strings.Join(fields, ",")
}

func export(rows ...string) string {
	return headerLine + "\n" + strings.Join(rows, "\n")
}

var completedDCRow = exportRow(
	"1001", "Dana Reed", "dana@example.com", "202-555-0101", "completed", sourceDC,
	"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
	"25.00", "25.00", "2.50", "27.50",
)

func TestParse_SingleCompletedRow(t *testing.T) {
	orders, err := reconcile.Parse(export(completedDCRow), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "1001", o.OrderID)
	assert.Equal(t, "Dana Reed", o.CustomerName)
	assert.Equal(t, "dana@example.com", o.CustomerEmail)
	assert.Equal(t, "202-555-0101", o.CustomerPhone)
	assert.Equal(t, "completed", o.Status)
	assert.Equal(t, sourceDC, o.SourceName)
	assert.Equal(t, "2025-06-14", o.OrderDate)
	assert.Equal(t, "09:00", o.OrderTime)
	assert.Equal(t, "SPIN CLASS", o.ClassName)
	assert.Equal(t, 1, o.Quantity)
	assert.Equal(t, 25.00, o.Price)
	assert.Equal(t, 25.00, o.LineItemSubtotal)
	assert.Equal(t, 25.00, o.OrderSubTotal)
	assert.Equal(t, 2.50, o.OrderTaxAmount)
	assert.Equal(t, 27.50, o.OrderTotalAmount)
}

func TestParse_SourceFilterExcludesOtherCities(t *testing.T) {
	orders, err := reconcile.Parse(export(completedDCRow), sourceAtlanta, knownSources)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestParse_NoFilterAcceptsAnyKnownSource(t *testing.T) {
	atlRow := exportRow(
		"2001", "Lee Park", "lee@example.com", "", "completed", sourceAtlanta,
		"2025-06-15", "10:00", "ONLY YAMS", "1", "30.00",
		"30.00", "30.00", "3.00", "33.00",
	)
	unknownRow := exportRow(
		"3001", "Sam Ito", "sam@example.com", "", "completed", "POPUP CHICAGO",
		"2025-06-15", "11:00", "ONLY YAMS", "1", "30.00",
		"30.00", "30.00", "3.00", "33.00",
	)

	orders, err := reconcile.Parse(export(completedDCRow, atlRow, unknownRow), "", knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1001", orders[0].OrderID)
	assert.Equal(t, "2001", orders[1].OrderID)
}

func TestParse_StatusCaseInsensitive(t *testing.T) {
	for _, status := range []string{"completed", "Completed", "COMPLETED"} {
		t.Run(status, func(t *testing.T) {
			line := exportRow(
				"1001", "Dana Reed", "dana@example.com", "", status, sourceDC,
				"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
				"25.00", "25.00", "2.50", "27.50",
			)
			orders, err := reconcile.Parse(export(line), sourceDC, knownSources)
			require.NoError(t, err)
			assert.Len(t, orders, 1)
		})
	}
}

func TestParse_NonCompletedStatusDropped(t *testing.T) {
	for _, status := range []string{"refunded", "pending", "cancelled"} {
		t.Run(status, func(t *testing.T) {
			line := exportRow(
				"1001", "Dana Reed", "dana@example.com", "", status, sourceDC,
				"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
				"25.00", "25.00", "2.50", "27.50",
			)
			orders, err := reconcile.Parse(export(line), sourceDC, knownSources)
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestParse_ContinuationRowBackfillsIdentity(t *testing.T) {
	primary := exportRow(
		"1002", "Ava Cole", "ava@example.com", "202-555-0102", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
		"25.00", "60.00", "6.00", "66.00",
	)
	continuation := exportRow(
		"1002", "", "", "", "", "",
		"", "", "TRAP MOBILITY @ 24", "1", "35.00",
		"35.00", "", "", "",
	)

	orders, err := reconcile.Parse(export(primary, continuation), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	cont := orders[1]
	assert.Equal(t, "Ava Cole", cont.CustomerName)
	assert.Equal(t, "ava@example.com", cont.CustomerEmail)
	assert.Equal(t, "202-555-0102", cont.CustomerPhone)
	assert.Equal(t, "2025-06-14", cont.OrderDate)
	assert.Equal(t, "09:00", cont.OrderTime)
	assert.Equal(t, "TRAP MOBILITY", cont.ClassName)
	// Order-level totals come from the snapshot, not the blank row copies.
	assert.Equal(t, 60.00, cont.OrderSubTotal)
	assert.Equal(t, 6.00, cont.OrderTaxAmount)
	assert.Equal(t, 66.00, cont.OrderTotalAmount)
	assert.Equal(t, sourceDC, cont.SourceName)
}

func TestParse_UnresolvableIdentityDropped(t *testing.T) {
	orphan := exportRow(
		"1003", "", "", "", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
		"25.00", "25.00", "2.50", "27.50",
	)
	orders, err := reconcile.Parse(export(orphan), sourceDC, knownSources)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestParse_FirstSnapshotWins(t *testing.T) {
	first := exportRow(
		"1004", "Ben Ruiz", "ben@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
		"25.00", "50.00", "5.00", "55.00",
	)
	second := exportRow(
		"1004", "Ben Ruiz", "ben@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "ONLY YAMS", "1", "25.00",
		"25.00", "999.00", "99.00", "1098.00",
	)

	orders, err := reconcile.Parse(export(first, second), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, 50.00, o.OrderSubTotal)
		assert.Equal(t, 5.00, o.OrderTaxAmount)
		assert.Equal(t, 55.00, o.OrderTotalAmount)
	}
}

func TestParse_RowAnomaliesSkipped(t *testing.T) {
	short := "1005,too,short"
	blankOrderID := exportRow(
		"", "Dana Reed", "dana@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
		"25.00", "25.00", "2.50", "27.50",
	)
	blankClass := exportRow(
		"1006", "Dana Reed", "dana@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "", "1", "25.00",
		"25.00", "25.00", "2.50", "27.50",
	)

	orders, err := reconcile.Parse(export(short, blankOrderID, blankClass, completedDCRow), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "1001", orders[0].OrderID)
}

func TestParse_CurrencyFormattingStripped(t *testing.T) {
	line := exportRow(
		"1007", "Dana Reed", "dana@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "2", `"$1,250.00"`,
		`"$2,500.00"`, `"$2,500.00"`, "$250.00", `"$2,750.00"`,
	)
	orders, err := reconcile.Parse(export(line), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, 1250.00, o.Price)
	assert.Equal(t, 2500.00, o.LineItemSubtotal)
	assert.Equal(t, 2500.00, o.OrderSubTotal)
	assert.Equal(t, 250.00, o.OrderTaxAmount)
	assert.Equal(t, 2750.00, o.OrderTotalAmount)
}

func TestParse_MissingColumnAbortsParse(t *testing.T) {
	text := "Order ID,Customer Name,Email\n1001,Dana Reed,dana@example.com"
	_, err := reconcile.Parse(text, sourceDC, knownSources)

	var missing *reconcile.MissingColumnError
	require.True(t, errors.As(err, &missing))
}

func TestParse_AllocatedRevenueSumsToOrderRevenue(t *testing.T) {
	primary := exportRow(
		"1008", "Ava Cole", "ava@example.com", "", "completed", sourceDC,
		"2025-06-14", "09:00", "SPIN CLASS", "1", "25.00",
		"25.00", "77.50", "7.13", "84.63",
	)
	second := exportRow(
		"1008", "", "", "", "", "",
		"", "", "ONLY YAMS", "1", "30.00",
		"30.00", "", "", "",
	)
	third := exportRow(
		"1008", "", "", "", "", "",
		"", "", "TRAP MOBILITY", "1", "22.50",
		"22.50", "", "", "",
	)

	orders, err := reconcile.Parse(export(primary, second, third), sourceDC, knownSources)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	var sum float64
	for _, o := range orders {
		sum += reconcile.AllocatedRevenue(o.LineItemSubtotal, o.OrderSubTotal, o.OrderTaxAmount)
	}
	assert.InDelta(t, 77.50+7.13, sum, 1e-9)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	text := headerLine + "\r\n" + completedDCRow + "\r\n"
	orders, err := reconcile.Parse(text, sourceDC, knownSources)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
