package reconcile

// AllocatedRevenue computes a line item's fair share of order revenue: its
// own subtotal plus a proportional slice of the order-level tax. When the
// order carries no subtotal the line subtotal is returned unchanged. Summed
// over every line item of an order, the result equals the order's subtotal
// plus tax up to floating-point rounding.
//
// The records carry the raw components rather than the allocation itself so
// any consumer can recompute it consistently.
func AllocatedRevenue(lineItemSubtotal, orderSubTotal, orderTaxAmount float64) float64 {
	if orderSubTotal > 0 {
		return lineItemSubtotal + (lineItemSubtotal/orderSubTotal)*orderTaxAmount
	}
	return lineItemSubtotal
}
