package app_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/inmemory"
	"github.com/abraham1744/amuthamorderapp/internal/app"
	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestApp(t *testing.T) (*app.Application, *inmemory.Store, *inmemory.Journal) {
	t.Helper()
	store := inmemory.NewStore()
	store.Seed(
		[]domain.Product{
			{Name: "Widget", Price: dec(t, "2.00")},
			{Name: "Gadget", Price: dec(t, "5.00")},
		},
		[]domain.Customer{{Name: "Amutham Stores"}},
	)
	jnl := inmemory.NewJournal()
	a := app.New(app.Stores{Catalog: store, Orders: store, History: store, Journal: jnl})
	return a, store, jnl
}

func widgetGadgetDraft(t *testing.T, a *app.Application) *domain.OrderDraft {
	t.Helper()
	cat, err := a.CreateOrder.LoadCatalog(context.Background())
	require.NoError(t, err)

	draft := domain.NewDraft("2026-09-01")
	draft.CustomerName = "Amutham Stores"
	draft.DeliveryDate = "2026-09-03"

	widget, ok := domain.FindProduct(cat.Products, "Widget")
	require.True(t, ok)
	gadget, ok := domain.FindProduct(cat.Products, "Gadget")
	require.True(t, ok)

	id := draft.AddItem()
	require.NoError(t, draft.SetProduct(id, widget))
	require.NoError(t, draft.SetQuantity(id, 3))
	id = draft.AddItem()
	require.NoError(t, draft.SetProduct(id, gadget))
	return draft
}

func TestCreateOrder_LoadCatalog(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t)
	cat, err := a.CreateOrder.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Products, 2)
	assert.Len(t, cat.Customers, 1)
}

func TestCreateOrder_SubmitWritesHeaderAndItems(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t)
	ctx := context.Background()

	order, err := a.CreateOrder.Submit(ctx, widgetGadgetDraft(t, a))
	require.NoError(t, err)
	assert.Equal(t, 4, order.TotalQuantity)
	assert.True(t, order.TotalPrice.Equal(dec(t, "11.00")))
	assert.Equal(t, domain.StatusPending, order.Status)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	items, err := store.ListLineItems(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, domain.SumSubtotals(items).Equal(order.TotalPrice))
}

func TestCreateOrder_SubmitRejectsInvalidDraft(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t)
	draft := domain.NewDraft("2026-09-01")
	// No customer, no items.
	_, err := a.CreateOrder.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, domain.ErrNoCustomer)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders, "nothing may be written for an invalid draft")
}

func TestCreateOrder_PartialSubmitReportsHeadlessOrder(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t)
	store.FailNextAppendDetails = true

	order, err := a.CreateOrder.Submit(context.Background(), widgetGadgetDraft(t, a))
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrPartialSubmit)
	assert.NotEmpty(t, order.OrderID, "the header that did land is reported back")

	orders, listErr := store.ListOrders(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, orders, 1, "header row stays; no compensating delete exists")

	items, listErr := store.ListLineItems(context.Background(), order.OrderID)
	require.NoError(t, listErr)
	assert.Empty(t, items)
}

func TestCreateOrder_AddCatalogEntries(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.CreateOrder.AddProduct(ctx, domain.Product{Name: "Sprocket", Price: dec(t, "3.25")}))
	require.NoError(t, a.CreateOrder.AddCustomer(ctx, domain.Customer{Name: "Corner Shop"}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	err = a.CreateOrder.AddProduct(ctx, domain.Product{Name: " ", Price: dec(t, "1.00")})
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}
