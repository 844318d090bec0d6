package reconcile

import (
	"fmt"
	"strings"
)

// MissingColumnError reports a required logical column that could not be
// resolved from the export's header row. It aborts the whole parse; schema
// errors are not per-row recoverable.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in export header", e.Column)
}

// ColumnSchema maps each logical field the engine needs to its column index
// in the export. Built once per parse from the header row, immutable after.
type ColumnSchema struct {
	OrderID          int
	CustomerName     int
	CustomerEmail    int
	CustomerPhone    int
	Status           int
	SourceName       int
	OrderDate        int
	OrderTime        int
	ClassName        int
	Quantity         int
	Price            int
	LineItemSubtotal int
	OrderSubTotal    int
	OrderTaxAmount   int
	OrderTotalAmount int

	// maxIndex is the highest resolved column index; rows with fewer than
	// maxIndex+1 fields are treated as malformed and skipped.
	maxIndex int
}

// MinFields returns the minimum field count a row must have to be usable.
func (s *ColumnSchema) MinFields() int {
	return s.maxIndex + 1
}

// ResolveSchema maps required logical fields to column positions. Each label
// matches the first header field whose lowercased text contains the label as
// a substring. The first unresolvable label fails the parse with a
// *MissingColumnError.
func ResolveSchema(header []string) (*ColumnSchema, error) {
	s := &ColumnSchema{}
	required := []struct {
		label string
		dest  *int
	}{
		{"order id", &s.OrderID},
		{"customer name", &s.CustomerName},
		{"email", &s.CustomerEmail},
		{"phone", &s.CustomerPhone},
		{"status", &s.Status},
		{"source", &s.SourceName},
		{"order date", &s.OrderDate},
		{"order time", &s.OrderTime},
		{"class name", &s.ClassName},
		{"quantity", &s.Quantity},
		{"price", &s.Price},
		{"item subtotal", &s.LineItemSubtotal},
		{"order subtotal", &s.OrderSubTotal},
		{"order tax", &s.OrderTaxAmount},
		{"order total", &s.OrderTotalAmount},
	}

	for _, req := range required {
		idx := -1
		for i, field := range header {
			if strings.Contains(strings.ToLower(field), req.label) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &MissingColumnError{Column: req.label}
		}
		*req.dest = idx
		if idx > s.maxIndex {
			s.maxIndex = idx
		}
	}
	return s, nil
}
