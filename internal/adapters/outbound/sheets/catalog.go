package sheets

import (
	"context"
	"fmt"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

// ListProducts fetches the product table, discarding the header row.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.get(ctx, rangeProducts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, 0, max(len(rows)-1, 0))
	for i, row := range dataRows(rows) {
		p, err := decodeProduct(row, i)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// AddProduct appends one catalog row.
func (c *Client) AddProduct(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("add product: %w", err)
	}
	if err := c.append(ctx, rangeProducts, [][]any{encodeProduct(p)}); err != nil {
		return fmt.Errorf("add product: %w", err)
	}
	return nil
}

// ListCustomers fetches the customer table, discarding the header row.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := c.get(ctx, rangeCustomers)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	customers := make([]domain.Customer, 0, max(len(rows)-1, 0))
	for i, row := range dataRows(rows) {
		cust, err := decodeCustomer(row, i)
		if err != nil {
			return nil, fmt.Errorf("list customers: %w", err)
		}
		customers = append(customers, cust)
	}
	return customers, nil
}

// AddCustomer appends one catalog row.
func (c *Client) AddCustomer(ctx context.Context, cust domain.Customer) error {
	if err := cust.Validate(); err != nil {
		return fmt.Errorf("add customer: %w", err)
	}
	if err := c.append(ctx, rangeCustomers, [][]any{encodeCustomer(cust)}); err != nil {
		return fmt.Errorf("add customer: %w", err)
	}
	return nil
}

// dataRows drops the header row, the first row of every table.
func dataRows(rows [][]any) [][]any {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
