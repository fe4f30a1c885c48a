package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one row of the product catalog. Name is the unique key; there is
// no separate product identifier in the backing sheet.
type Product struct {
	Name  string
	Price decimal.Decimal
}

// Validate checks the catalog invariants for a product row.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Customer is one row of the customer catalog, keyed by name.
type Customer struct {
	Name string
}

// Validate checks that the customer has a usable name.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ParsePrice parses a money amount as users type it, tolerating a leading
// currency sign.
func ParsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$")))
}

// FindProduct returns the product with the given name, or false when the
// catalog has no such row. Matching is exact, the same equality the sheet
// uses for its key column.
func FindProduct(products []Product, name string) (Product, bool) {
	for _, p := range products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}
