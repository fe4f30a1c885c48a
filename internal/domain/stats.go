package domain

// OrderStats are the aggregate counters shown at the top of the orders
// screen, derived from a full in-memory pass over orders and line items.
type OrderStats struct {
	TotalOrders     int
	PendingOrders   int
	DeliveredOrders int

	// PerProductQuantity tallies quantities per product name across every
	// line item system-wide, not only for the listed orders.
	PerProductQuantity map[string]int
}

// ComputeStats derives the counters from the loaded orders and all line items.
func ComputeStats(orders []Order, details []LineItem) OrderStats {
	stats := OrderStats{
		TotalOrders:        len(orders),
		PerProductQuantity: make(map[string]int),
	}
	for _, o := range orders {
		if o.Delivered {
			stats.DeliveredOrders++
		}
	}
	stats.PendingOrders = stats.TotalOrders - stats.DeliveredOrders
	for _, d := range details {
		stats.PerProductQuantity[d.ProductName] += d.Quantity
	}
	return stats
}
