package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftItem is a line item under assembly. ID is a local key for edits on the
// create-order screen, unrelated to the order id assigned at submission.
type DraftItem struct {
	ID          string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderDraft is the client-side cart for the create-order screen: a chosen
// customer, two dates, and an ordered list of draft items. The zero value is
// not usable; construct with NewDraft.
type OrderDraft struct {
	CustomerName string
	InvoiceDate  string
	DeliveryDate string
	items        []DraftItem
}

// NewDraft returns an empty draft with both dates set to today in the given
// location, matching what the create-order screen starts from.
func NewDraft(today string) *OrderDraft {
	return &OrderDraft{
		InvoiceDate:  today,
		DeliveryDate: today,
	}
}

// AddItem appends an empty line item with quantity 1 and returns its local id.
func (d *OrderDraft) AddItem() string {
	id := uuid.NewString()
	d.items = append(d.items, DraftItem{ID: id, Quantity: 1})
	return id
}

// RemoveItem deletes the item with the given local id.
func (d *OrderDraft) RemoveItem(id string) error {
	for i, it := range d.items {
		if it.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove item %q: %w", id, ErrUnknownItem)
}

// SetProduct assigns a catalog product to the item and recomputes its price
// and subtotal from the product's current price.
func (d *OrderDraft) SetProduct(id string, p Product) error {
	it := d.find(id)
	if it == nil {
		return fmt.Errorf("set product on item %q: %w", id, ErrUnknownItem)
	}
	it.ProductName = p.Name
	it.Price = p.Price
	it.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
	return nil
}

// SetQuantity updates the item's quantity and recomputes its subtotal against
// the already-selected price.
func (d *OrderDraft) SetQuantity(id string, quantity int) error {
	it := d.find(id)
	if it == nil {
		return fmt.Errorf("set quantity on item %q: %w", id, ErrUnknownItem)
	}
	it.Quantity = quantity
	it.Subtotal = it.Price.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// Items returns a copy of the current draft items in insertion order.
func (d *OrderDraft) Items() []DraftItem {
	out := make([]DraftItem, len(d.items))
	copy(out, d.items)
	return out
}

// Totals sums quantity and subtotal over all current items.
func (d *OrderDraft) Totals() (quantity int, price decimal.Decimal) {
	price = decimal.Zero
	for _, it := range d.items {
		quantity += it.Quantity
		price = price.Add(it.Subtotal)
	}
	return quantity, price
}

// Validate applies the submission rules: a customer must be chosen, at least
// one item must exist, every item needs a product and a positive quantity,
// and both dates must parse as YYYY-MM-DD.
func (d *OrderDraft) Validate() error {
	if d.CustomerName == "" {
		return ErrNoCustomer
	}
	if len(d.items) == 0 {
		return ErrNoItems
	}
	for _, it := range d.items {
		if it.ProductName == "" || it.Quantity <= 0 {
			return fmt.Errorf("item %s: %w", it.ID, ErrItemIncomplete)
		}
	}
	for _, date := range []string{d.InvoiceDate, d.DeliveryDate} {
		if date == "" {
			return ErrBadDate
		}
		if _, err := ParseDate(date); err != nil {
			return fmt.Errorf("%q: %w", date, ErrBadDate)
		}
	}
	return nil
}

// Build freezes the draft into an order header and its line items under the
// given order id. The caller is expected to have validated the draft first.
func (d *OrderDraft) Build(orderID string) (Order, []LineItem) {
	quantity, price := d.Totals()
	order := Order{
		OrderID:       orderID,
		CustomerName:  d.CustomerName,
		InvoiceDate:   d.InvoiceDate,
		DeliveryDate:  d.DeliveryDate,
		TotalQuantity: quantity,
		TotalPrice:    price,
		Status:        StatusPending,
		Delivered:     false,
	}
	items := make([]LineItem, 0, len(d.items))
	for _, it := range d.items {
		items = append(items, LineItem{
			OrderID:     orderID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return order, items
}

func (d *OrderDraft) find(id string) *DraftItem {
	for i := range d.items {
		if d.items[i].ID == id {
			return &d.items[i]
		}
	}
	return nil
}
