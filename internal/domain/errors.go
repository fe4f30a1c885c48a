package domain

import "errors"

// Sentinel errors for domain validation failures.
// Check with errors.Is; wrap with fmt.Errorf("...: %w", ...) to add context.

var (
	// ErrEmptyName indicates a catalog row without a name.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNegativePrice indicates a catalog price below zero.
	ErrNegativePrice = errors.New("price must not be negative")

	// ErrNoCustomer indicates an order draft without a chosen customer.
	ErrNoCustomer = errors.New("no customer selected")

	// ErrNoItems indicates an order draft without any line items.
	ErrNoItems = errors.New("order has no line items")

	// ErrItemIncomplete indicates a line item lacking a product or carrying a
	// non-positive quantity.
	ErrItemIncomplete = errors.New("line item has no product or non-positive quantity")

	// ErrBadDate indicates a missing or malformed invoice/delivery date.
	ErrBadDate = errors.New("invoice and delivery dates must be set as YYYY-MM-DD")

	// ErrUnknownItem indicates a draft operation addressed a line item id the
	// draft does not contain.
	ErrUnknownItem = errors.New("unknown line item id")

	// ErrUnknownProduct indicates a product name absent from the catalog.
	ErrUnknownProduct = errors.New("product not found in catalog")
)
