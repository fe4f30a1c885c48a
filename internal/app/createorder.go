package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// idAttempts bounds regeneration when a generated order id collides with an
// existing row. The id embeds a millisecond timestamp, so collisions are
// already unlikely within this usage pattern.
const idAttempts = 3

// Catalog is what the create-order screen loads before the user can assemble
// a draft.
type Catalog struct {
	Products  []domain.Product
	Customers []domain.Customer
}

// CreateOrderService backs the create-order screen.
type CreateOrderService struct {
	catalog ports.CatalogStore
	orders  ports.OrderStore
}

// NewCreateOrderService wires the service to its stores.
func NewCreateOrderService(catalog ports.CatalogStore, orders ports.OrderStore) *CreateOrderService {
	return &CreateOrderService{catalog: catalog, orders: orders}
}

// LoadCatalog fetches products and customers with two concurrent requests,
// the same fan-out the screen performs on first load.
func (s *CreateOrderService) LoadCatalog(ctx context.Context) (Catalog, error) {
	var cat Catalog
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.catalog.ListProducts(ctx)
		if err != nil {
			return err
		}
		cat.Products = products
		return nil
	})
	g.Go(func() error {
		customers, err := s.catalog.ListCustomers(ctx)
		if err != nil {
			return err
		}
		cat.Customers = customers
		return nil
	})
	if err := g.Wait(); err != nil {
		return Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// AddProduct appends a product to the catalog.
func (s *CreateOrderService) AddProduct(ctx context.Context, p domain.Product) error {
	return s.catalog.AddProduct(ctx, p)
}

// AddCustomer appends a customer to the catalog.
func (s *CreateOrderService) AddCustomer(ctx context.Context, c domain.Customer) error {
	return s.catalog.AddCustomer(ctx, c)
}

// Submit validates the draft, assigns a fresh order id, and writes the order
// header followed by its line items. The second write is not guarded by any
// compensation: when it fails after the header landed, the returned error
// wraps ports.ErrPartialSubmit so the caller knows a headless order exists.
func (s *CreateOrderService) Submit(ctx context.Context, draft *domain.OrderDraft) (domain.Order, error) {
	if err := draft.Validate(); err != nil {
		return domain.Order{}, err
	}

	var (
		order domain.Order
		items []domain.LineItem
	)
	for attempt := 0; ; attempt++ {
		order, items = draft.Build(s.orders.NewOrderID())
		err := s.orders.CreateOrder(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, ports.ErrDuplicateOrderID) && attempt+1 < idAttempts {
			continue
		}
		return domain.Order{}, fmt.Errorf("submit order: %w", err)
	}

	if err := s.orders.AppendLineItems(ctx, items); err != nil {
		return order, fmt.Errorf("submit order %s: %w: %w", order.OrderID, ports.ErrPartialSubmit, err)
	}
	return order, nil
}
