package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses as written to the status column. The delivered flag is the
// authoritative bit; the status text mirrors it for human readers of the
// sheet.
const (
	StatusPending   = "Pending"
	StatusDelivered = "Delivered"
)

// DateLayout is the calendar-date form used for invoice and delivery dates.
const DateLayout = "2006-01-02"

// Order is the header row of one order. TotalQuantity and TotalPrice are
// denormalized sums computed at submission time and never recomputed from the
// line items afterwards.
type Order struct {
	OrderID       string
	CustomerName  string
	InvoiceDate   string
	DeliveryDate  string
	TotalQuantity int
	TotalPrice    decimal.Decimal
	Status        string
	Delivered     bool
}

// LineItem is one product entry belonging to an order. Subtotal is
// Quantity × Price, computed when the draft is assembled.
type LineItem struct {
	OrderID     string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderWithDetails joins an order header with its line items by order id.
type OrderWithDetails struct {
	Order
	Details []LineItem
}

// ArchivedOrder is a history row: a copy of the order header at the moment it
// was archived, plus the archival timestamp. Details are re-fetched from the
// live detail table when history is displayed, not copied at archive time.
type ArchivedOrder struct {
	Order
	ArchivedAt string
	Details    []LineItem
}

// JoinDetails attaches every line item to its order by id equality. Items
// referencing no known order are dropped; the sheet does not enforce
// referential integrity and orphans are simply never shown.
func JoinDetails(orders []Order, details []LineItem) []OrderWithDetails {
	joined := make([]OrderWithDetails, 0, len(orders))
	for _, o := range orders {
		owd := OrderWithDetails{Order: o}
		for _, d := range details {
			if d.OrderID == o.OrderID {
				owd.Details = append(owd.Details, d)
			}
		}
		joined = append(joined, owd)
	}
	return joined
}

// ParseDate parses a calendar date in the sheet's YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SumSubtotals returns the sum of the items' subtotals.
func SumSubtotals(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal)
	}
	return sum
}
