// Package inmemory provides in-process implementations of the outbound
// ports. They back unit tests and development mode; behavior mirrors the
// sheets adapter's contracts (append-only tables, silent no-op status update
// for unknown ids, archive-as-copy).
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// Store keeps the five logical tables in slices guarded by one mutex.
type Store struct {
	mu        sync.Mutex
	products  []domain.Product
	customers []domain.Customer
	orders    []domain.Order
	details   []domain.LineItem
	history   []domain.ArchivedOrder

	nextID int
	now    func() time.Time

	// FailNextAppendDetails makes the next AppendLineItems call fail, for
	// exercising the partial-submit path.
	FailNextAppendDetails bool
	// FailNextArchive makes the next Archive call fail, for exercising the
	// marked-but-not-archived saga state.
	FailNextArchive bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreWithClock returns an empty store using the given time source for
// archive timestamps.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Seed loads catalog fixtures.
func (s *Store) Seed(products []domain.Product, customers []domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
	s.customers = append(s.customers, customers...)
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...), nil
}

func (s *Store) AddProduct(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Customer(nil), s.customers...), nil
}

func (s *Store) AddCustomer(ctx context.Context, c domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, c)
	return nil
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...), nil
}

func (s *Store) CreateOrder(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.orders {
		if e.OrderID == o.OrderID {
			return fmt.Errorf("create order %s: %w", o.OrderID, ports.ErrDuplicateOrderID)
		}
	}
	s.orders = append(s.orders, o)
	return nil
}

func (s *Store) AppendLineItems(ctx context.Context, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextAppendDetails {
		s.FailNextAppendDetails = false
		return fmt.Errorf("append line items: %w", ports.ErrRemote)
	}
	s.details = append(s.details, items...)
	return nil
}

func (s *Store) ListLineItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, 0, len(s.details))
	for _, d := range s.details {
		if orderID != "" && d.OrderID != orderID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, orderID, status string, delivered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders[i].Status = status
			s.orders[i].Delivered = delivered
			return nil
		}
	}
	return nil
}

func (s *Store) NewOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("ORD-%d-%d", s.now().UnixMilli(), s.nextID)
}

func (s *Store) ListHistory(ctx context.Context) ([]domain.ArchivedOrder, error) {
	s.mu.Lock()
	entries := append([]domain.ArchivedOrder(nil), s.history...)
	s.mu.Unlock()

	for i := range entries {
		details, err := s.ListLineItems(ctx, entries[i].OrderID)
		if err != nil {
			return nil, err
		}
		entries[i].Details = details
	}
	return entries, nil
}

func (s *Store) Archive(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNextArchive {
		s.FailNextArchive = false
		return fmt.Errorf("archive order %s: %w", o.OrderID, ports.ErrRemote)
	}
	s.history = append(s.history, domain.ArchivedOrder{
		Order:      o,
		ArchivedAt: s.now().UTC().Format(time.RFC3339),
	})
	return nil
}
