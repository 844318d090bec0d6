package domain

// ClassSummaryRow is one class's attendance and revenue for an event.
// Roster classes with no sales appear with zero counts.
type ClassSummaryRow struct {
	ClassName  string  `json:"class_name"`
	Capacity   int     `json:"capacity,omitempty"`
	Attendance int     `json:"attendance"`
	Revenue    float64 `json:"revenue"`
}

// TotalsSummary aggregates an event's reconciled sales.
type TotalsSummary struct {
	OrderCount    int     `json:"order_count"`
	LineItemCount int     `json:"line_item_count"`
	Attendance    int     `json:"attendance"`
	GrossSales    float64 `json:"gross_sales"`
	TaxCollected  float64 `json:"tax_collected"`
	Revenue       float64 `json:"revenue"`
}

// CustomerSummaryRow is one customer's visits and spend for an event.
type CustomerSummaryRow struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Visits        int     `json:"visits"`
	Spend         float64 `json:"spend"`
}
