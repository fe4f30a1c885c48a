package ports

import (
	"context"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

// CatalogStore provides the product and customer tables.
//
// Error Contract:
// - List methods return (nil, err wrapping ErrRemote/ErrAuthentication) on
//   transport failure and (nil, err wrapping ErrBadRow) on malformed rows;
//   an empty table yields an empty slice and a nil error, so callers can
//   always tell "no data" from "request failed".
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, p domain.Product) error
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	AddCustomer(ctx context.Context, c domain.Customer) error
}

// OrderStore provides the order and line-item tables.
//
// Error Contract:
// - UpdateStatus is a silent no-op (nil error) when the order id is absent.
// - ListLineItems with an empty orderID returns every line item.
// - CreateOrder returns ErrDuplicateOrderID when the id is already present.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) error
	AppendLineItems(ctx context.Context, items []domain.LineItem) error
	ListLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error)
	UpdateStatus(ctx context.Context, orderID, status string, delivered bool) error

	// NewOrderID generates a fresh order identifier. Uniqueness against
	// existing rows is the caller's concern (see app.CreateOrderService).
	NewOrderID() string
}

// HistoryStore provides the archived-order table.
//
// Archive appends a copy of the header plus a timestamp; it never touches the
// source rows, so repeated calls produce repeated history rows.
type HistoryStore interface {
	ListHistory(ctx context.Context) ([]domain.ArchivedOrder, error)
	Archive(ctx context.Context, o domain.Order) error
}

// TokenSource yields a bearer token valid for the remote store. Values are
// cached by the implementation; callers just ask per request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
