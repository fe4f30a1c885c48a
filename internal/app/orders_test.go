package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

func TestOrders_LoadJoinsAndCounts(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t)
	ctx := context.Background()
	first := submitOne(t, a)
	second := submitOne(t, a)

	_, err := a.Orders.ToggleDelivered(ctx, second.OrderID)
	require.NoError(t, err)

	view, err := a.Orders.Load(ctx)
	require.NoError(t, err)
	require.Len(t, view.Orders, 2)

	byID := make(map[string]domain.OrderWithDetails, 2)
	for _, o := range view.Orders {
		byID[o.OrderID] = o
	}
	assert.Len(t, byID[first.OrderID].Details, 2)
	assert.Len(t, byID[second.OrderID].Details, 2)

	assert.Equal(t, 2, view.Stats.TotalOrders)
	assert.Equal(t, 1, view.Stats.PendingOrders)
	assert.Equal(t, 1, view.Stats.DeliveredOrders)
	assert.Equal(t, 8, view.Stats.PerProductQuantity["Widget"]+view.Stats.PerProductQuantity["Gadget"],
		"per-product tally spans every line item across all orders")
	assert.Equal(t, 6, view.Stats.PerProductQuantity["Widget"])
	assert.Equal(t, 2, view.Stats.PerProductQuantity["Gadget"])
	firstQty := 0
	for _, d := range byID[first.OrderID].Details {
		firstQty += d.Quantity
	}
	assert.Equal(t, 4, firstQty, "one order's line items still sum to its own total")
}

func TestHistory_LoadFiltersAndSummarizes(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t)
	ctx := context.Background()
	order := submitOne(t, a)
	_, err := a.Orders.ToggleDelivered(ctx, order.OrderID)
	require.NoError(t, err)

	view, err := a.History.Load(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 1, view.Summary.Count)
	assert.Equal(t, 4, view.Summary.TotalQuantity)
	assert.True(t, view.Summary.TotalRevenue.Equal(dec(t, "11.00")))

	view, err = a.History.Load(ctx, domain.HistoryFilter{Query: "widget"})
	require.NoError(t, err)
	assert.Len(t, view.Entries, 1, "product names match case-insensitively")

	view, err = a.History.Load(ctx, domain.HistoryFilter{Query: "no such thing"})
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Equal(t, 0, view.Summary.Count)
	assert.True(t, view.Summary.TotalRevenue.IsZero())
}
