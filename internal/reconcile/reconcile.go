package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

// statusCompleted is the only order status that qualifies for revenue.
// Refunded, pending, and cancelled rows are dropped without diagnostic.
const statusCompleted = "completed"

// OrderSnapshot holds the order-level financial totals captured once per
// order id. First occurrence wins; later rows for the same order never
// overwrite it, since downstream revenue-sum invariants depend on a single
// stable snapshot per order.
type OrderSnapshot struct {
	OrderSubTotal    float64
	OrderTaxAmount   float64
	OrderTotalAmount float64
	SourceName       string
}

// ParsedOrder is one reconciled line item of a qualifying order. The
// order-level totals are copied verbatim from the order's snapshot, not
// re-derived per line.
type ParsedOrder struct {
	OrderID          string  `json:"order_id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	Status           string  `json:"status"`
	SourceName       string  `json:"source_name"`
	OrderDate        string  `json:"order_date"`
	OrderTime        string  `json:"order_time"`
	ClassName        string  `json:"class_name"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	LineItemSubtotal float64 `json:"line_item_subtotal"`
	OrderSubTotal    float64 `json:"order_subtotal"`
	OrderTaxAmount   float64 `json:"order_tax_amount"`
	OrderTotalAmount float64 `json:"order_total_amount"`
}

// Parse converts a raw, line-delimited sales export into a clean sequence of
// per-line-item records scoped to one event source. The first line is the
// header row. When sourceFilter is non-empty an order qualifies only if its
// source name equals it exactly; otherwise any of knownSources qualifies.
// Only completed orders qualify. Row-level anomalies (short rows, blank
// order ids, blank class names, unresolvable customer identity) are skipped,
// never escalated; zero records is a normal outcome. The only error is a
// *MissingColumnError from header resolution.
//
// Parse is a pure function of its inputs and safe for concurrent use.
func Parse(text string, sourceFilter string, knownSources []string) ([]ParsedOrder, error) {
	lines := strings.Split(text, "\n")
	header := SplitLine(strings.TrimRight(lines[0], "\r"))
	schema, err := ResolveSchema(header)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, SplitLine(strings.TrimRight(line, "\r")))
	}

	// Pass 1: qualification. An order qualifies when a row carries the
	// expected source label and a completed status. The first qualifying
	// row's totals become the order's snapshot.
	snapshots := make(map[string]*OrderSnapshot)
	// Primary-row identity index: first row per order id with a non-blank
	// customer name. Continuation rows of multi-item orders leave customer
	// fields blank, so pass 2 backfills from here.
	primary := make(map[string][]string)

	for _, row := range rows {
		if len(row) < schema.MinFields() {
			continue
		}
		orderID := strings.TrimSpace(row[schema.OrderID])
		if orderID == "" {
			continue
		}
		if _, ok := primary[orderID]; !ok && strings.TrimSpace(row[schema.CustomerName]) != "" {
			primary[orderID] = row
		}

		source := strings.TrimSpace(row[schema.SourceName])
		if source == "" {
			continue
		}
		if !sourceQualifies(source, sourceFilter, knownSources) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(row[schema.Status]), statusCompleted) {
			continue
		}
		if _, ok := snapshots[orderID]; !ok {
			snapshots[orderID] = &OrderSnapshot{
				OrderSubTotal:    parseMoney(row[schema.OrderSubTotal]),
				OrderTaxAmount:   parseMoney(row[schema.OrderTaxAmount]),
				OrderTotalAmount: parseMoney(row[schema.OrderTotalAmount]),
				SourceName:       source,
			}
		}
	}

	// Pass 2: emission. One record per line item of a qualifying order,
	// with customer identity backfilled from the order's primary row.
	var orders []ParsedOrder
	for _, row := range rows {
		if len(row) < schema.MinFields() {
			continue
		}
		orderID := strings.TrimSpace(row[schema.OrderID])
		if orderID == "" {
			continue
		}
		snapshot, ok := snapshots[orderID]
		if !ok {
			continue
		}
		className := strings.TrimSpace(row[schema.ClassName])
		if className == "" {
			continue
		}

		identity := row
		if strings.TrimSpace(row[schema.CustomerName]) == "" || strings.TrimSpace(row[schema.CustomerEmail]) == "" {
			if p, ok := primary[orderID]; ok {
				identity = p
			}
		}
		name := strings.TrimSpace(identity[schema.CustomerName])
		email := strings.TrimSpace(identity[schema.CustomerEmail])
		if name == "" || email == "" {
			// Cannot attribute a sale to no customer.
			continue
		}

		orders = append(orders, ParsedOrder{
			OrderID:          orderID,
			CustomerName:     name,
			CustomerEmail:    email,
			CustomerPhone:    strings.TrimSpace(identity[schema.CustomerPhone]),
			Status:           strings.TrimSpace(identity[schema.Status]),
			SourceName:       snapshot.SourceName,
			OrderDate:        strings.TrimSpace(identity[schema.OrderDate]),
			OrderTime:        strings.TrimSpace(identity[schema.OrderTime]),
			ClassName:        CanonicalClassName(className),
			Quantity:         parseQuantity(row[schema.Quantity]),
			Price:            parseMoney(row[schema.Price]),
			LineItemSubtotal: parseMoney(row[schema.LineItemSubtotal]),
			OrderSubTotal:    snapshot.OrderSubTotal,
			OrderTaxAmount:   snapshot.OrderTaxAmount,
			OrderTotalAmount: snapshot.OrderTotalAmount,
		})
	}
	return orders, nil
}

func sourceQualifies(source, sourceFilter string, knownSources []string) bool {
	if sourceFilter != "" {
		return source == sourceFilter
	}
	for _, known := range knownSources {
		if source == known {
			return true
		}
	}
	return false
}

// nonNumeric strips currency formatting ($, commas, spaces) from money
// fields before parsing.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

func parseMoney(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseQuantity(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
