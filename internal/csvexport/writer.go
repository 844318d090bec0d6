package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"boxoffice/internal/reconcile"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (16 columns).
var columns = []string{
	"Order ID",
	"Customer Name",
	"Email",
	"Phone",
	"Status",
	"Source",
	"Order Date",
	"Order Time",
	"Class Name",
	"Quantity",
	"Price",
	"Lineitem Subtotal",
	"Order Subtotal",
	"Order Tax Amount",
	"Order Total Amount",
	"Allocated Revenue",
}

// Writer wraps csv.Writer for exporting reconciled line items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 16-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOrders converts a batch of reconciled line items to CSV rows and
// writes them.
func (w *Writer) WriteOrders(orders []reconcile.ParsedOrder) error {
	for i := range orders {
		row := orderToRow(&orders[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// orderToRow converts a single line item to a 16-element string slice. The
// last column is the line's allocated share of order revenue, recomputed
// from the raw components the record carries.
func orderToRow(o *reconcile.ParsedOrder) []string {
	return []string{
		o.OrderID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.Status,
		o.SourceName,
		o.OrderDate,
		o.OrderTime,
		o.ClassName,
		strconv.Itoa(o.Quantity),
		formatMoney(o.Price),
		formatMoney(o.LineItemSubtotal),
		formatMoney(o.OrderSubTotal),
		formatMoney(o.OrderTaxAmount),
		formatMoney(o.OrderTotalAmount),
		formatMoney(reconcile.AllocatedRevenue(o.LineItemSubtotal, o.OrderSubTotal, o.OrderTaxAmount)),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a city name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_city_name}_{YYYY-MM-DD}.csv
func BuildFilename(cityName string) string {
	sanitized := SanitizeFilename(cityName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
