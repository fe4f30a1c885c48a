package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// ListOrders fetches the whole order table, discarding the header row.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := c.get(ctx, rangeOrders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]domain.Order, 0, max(len(rows)-1, 0))
	for i, row := range dataRows(rows) {
		o, err := decodeOrder(row, i)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// CreateOrder appends one order header row after checking the id is not
// already taken.
func (c *Client) CreateOrder(ctx context.Context, o domain.Order) error {
	existing, err := c.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for _, e := range existing {
		if e.OrderID == o.OrderID {
			return fmt.Errorf("create order %s: %w", o.OrderID, ports.ErrDuplicateOrderID)
		}
	}
	if err := c.append(ctx, rangeOrders, [][]any{encodeOrder(o)}); err != nil {
		return fmt.Errorf("create order %s: %w", o.OrderID, err)
	}
	return nil
}

// AppendLineItems appends the items as one batch, in the order given.
func (c *Client) AppendLineItems(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, encodeLineItem(it))
	}
	if err := c.append(ctx, rangeDetails, rows); err != nil {
		return fmt.Errorf("append line items: %w", err)
	}
	return nil
}

// ListLineItems fetches the whole detail table; a non-empty orderID narrows
// the result to that order's items.
func (c *Client) ListLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	rows, err := c.get(ctx, rangeDetails)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	items := make([]domain.LineItem, 0, max(len(rows)-1, 0))
	for i, row := range dataRows(rows) {
		it, err := decodeLineItem(row, i)
		if err != nil {
			return nil, fmt.Errorf("list line items: %w", err)
		}
		if orderID != "" && it.OrderID != orderID {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// UpdateStatus locates the order by re-reading the whole table and writes the
// two status cells (columns G:H) of the located row. An absent order id is a
// silent no-op: no write is issued and no error returned.
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string, delivered bool) error {
	orders, err := c.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	for i, o := range orders {
		if o.OrderID != orderID {
			continue
		}
		row := sheetRow(i)
		cellRange := fmt.Sprintf("Orders!G%d:H%d", row, row)
		if err := c.update(ctx, cellRange, [][]any{{status, delivered}}); err != nil {
			return fmt.Errorf("update status of %s: %w", orderID, err)
		}
		return nil
	}
	return nil
}

// ListHistory fetches the archived orders and then, per entry, re-fetches its
// line items by scanning the detail table. The per-entry round trips mirror
// how the history screen has always loaded.
func (c *Client) ListHistory(ctx context.Context) ([]domain.ArchivedOrder, error) {
	rows, err := c.get(ctx, rangeHistory)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	entries := make([]domain.ArchivedOrder, 0, max(len(rows)-1, 0))
	for i, row := range dataRows(rows) {
		a, err := decodeArchived(row, i)
		if err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		entries = append(entries, a)
	}
	for i := range entries {
		details, err := c.ListLineItems(ctx, entries[i].OrderID)
		if err != nil {
			return nil, fmt.Errorf("list history: details of %s: %w", entries[i].OrderID, err)
		}
		entries[i].Details = details
	}
	return entries, nil
}

// Archive appends a history row copying the order header plus the archival
// timestamp. The source order row is left in place; repeated calls append
// repeated history rows.
func (c *Client) Archive(ctx context.Context, o domain.Order) error {
	timestamp := c.now().UTC().Format(time.RFC3339)
	if err := c.append(ctx, rangeHistory, [][]any{encodeArchived(o, timestamp)}); err != nil {
		return fmt.Errorf("archive order %s: %w", o.OrderID, err)
	}
	return nil
}
