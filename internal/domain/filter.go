package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryFilter narrows archived orders on the history screen. Query is a
// case-insensitive substring matched against the order id, the customer name,
// and every line item's product name. Start and End bound the delivery date
// inclusively; both must be set for the range to apply, mirroring the screen
// which only filters once both pickers have values.
type HistoryFilter struct {
	Query string
	Start time.Time
	End   time.Time
}

// Matches reports whether the archived order passes the filter.
func (f HistoryFilter) Matches(entry ArchivedOrder) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		hit := strings.Contains(strings.ToLower(entry.OrderID), q) ||
			strings.Contains(strings.ToLower(entry.CustomerName), q)
		if !hit {
			for _, d := range entry.Details {
				if strings.Contains(strings.ToLower(d.ProductName), q) {
					hit = true
					break
				}
			}
		}
		if !hit {
			return false
		}
	}

	if !f.Start.IsZero() && !f.End.IsZero() {
		delivery, err := ParseDate(entry.DeliveryDate)
		if err != nil {
			// Unparseable delivery dates never satisfy a date range.
			return false
		}
		if delivery.Before(f.Start) || delivery.After(f.End) {
			return false
		}
	}
	return true
}

// FilterHistory returns the entries passing the filter, preserving order.
func FilterHistory(entries []ArchivedOrder, f HistoryFilter) []ArchivedOrder {
	out := make([]ArchivedOrder, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// HistorySummary aggregates the filtered history set: entry count, summed
// line-item quantity, and summed order total price.
type HistorySummary struct {
	Count         int
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}

// SummarizeHistory computes the summary shown above the history list. The
// quantity sums line items (not the denormalized header total), matching what
// the screen displays.
func SummarizeHistory(entries []ArchivedOrder) HistorySummary {
	sum := HistorySummary{Count: len(entries), TotalRevenue: decimal.Zero}
	for _, e := range entries {
		sum.TotalRevenue = sum.TotalRevenue.Add(e.TotalPrice)
		for _, d := range e.Details {
			sum.TotalQuantity += d.Quantity
		}
	}
	return sum
}
