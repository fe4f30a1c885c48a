package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// OrdersView is everything the order-management screen shows: all orders
// joined with their line items, plus the aggregate counters.
type OrdersView struct {
	Orders []domain.OrderWithDetails
	Stats  domain.OrderStats
}

// OrdersService backs the order-management screen.
type OrdersService struct {
	orders ports.OrderStore
	saga   *ArchiveSaga
}

// NewOrdersService wires the service to its store and the archive saga.
func NewOrdersService(orders ports.OrderStore, saga *ArchiveSaga) *OrdersService {
	return &OrdersService{orders: orders, saga: saga}
}

// Load fetches all orders and all line items with two concurrent requests,
// joins them by order id, and derives the counters. Every screen focus
// triggers a full reload; there is no cache.
func (s *OrdersService) Load(ctx context.Context) (OrdersView, error) {
	var (
		orders  []domain.Order
		details []domain.LineItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.orders.ListLineItems(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return OrdersView{}, fmt.Errorf("load orders: %w", err)
	}

	return OrdersView{
		Orders: domain.JoinDetails(orders, details),
		Stats:  domain.ComputeStats(orders, details),
	}, nil
}

// ToggleDelivered flips the order's delivered flag. The transition to
// delivered runs the journaled archive saga (status write, history append);
// the transition back to pending only rewrites the status cells — the
// history row from the earlier delivery stays, so an order toggled back can
// appear in both the live list and history.
func (s *OrdersService) ToggleDelivered(ctx context.Context, orderID string) (bool, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", orderID, err)
	}
	var order domain.Order
	found := false
	for _, o := range orders {
		if o.OrderID == orderID {
			order, found = o, true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("toggle %s: %w", orderID, ports.ErrOrderNotFound)
	}

	if order.Delivered {
		if err := s.orders.UpdateStatus(ctx, orderID, domain.StatusPending, false); err != nil {
			return false, fmt.Errorf("toggle %s: %w", orderID, err)
		}
		return false, nil
	}

	if err := s.saga.Deliver(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}
