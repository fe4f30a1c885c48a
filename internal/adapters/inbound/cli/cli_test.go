package cli_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/inbound/cli"
	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/inmemory"
	"github.com/abraham1744/amuthamorderapp/internal/app"
	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

func newTestCLI(t *testing.T) (*cli.CLI, *bytes.Buffer, *inmemory.Store) {
	t.Helper()
	store := inmemory.NewStore()
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)
		return d
	}
	store.Seed(
		[]domain.Product{
			{Name: "Widget", Price: price("2.00")},
			{Name: "Gadget", Price: price("5.00")},
		},
		[]domain.Customer{{Name: "Amutham Stores"}},
	)
	a := app.New(app.Stores{Catalog: store, Orders: store, History: store, Journal: inmemory.NewJournal()})
	var buf bytes.Buffer
	return cli.New(a, &buf), &buf, store
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	c, buf, _ := newTestCLI(t)
	err := c.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "usage: orderctl")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCLI(t)
	err := c.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorContains(t, err, "frobnicate")
}

func TestProductsCommand(t *testing.T) {
	t.Parallel()

	c, buf, _ := newTestCLI(t)
	require.NoError(t, c.Run(context.Background(), []string{"products"}))
	out := buf.String()
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "2 product(s)")
}

func TestAddProductCommand(t *testing.T) {
	t.Parallel()

	c, buf, store := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, c.Run(ctx, []string{"add-product", "-name", "Sprocket", "-price", "$3.25"}))
	assert.Contains(t, buf.String(), "added product Sprocket")

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.True(t, products[2].Price.Equal(decimal.RequireFromString("3.25")))

	err = c.Run(ctx, []string{"add-product", "-name", "Nameless"})
	assert.ErrorContains(t, err, "-price is required")
}

func TestCreateAndOrdersCommands(t *testing.T) {
	t.Parallel()

	c, buf, _ := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, c.Run(ctx, []string{
		"create",
		"-customer", "Amutham Stores",
		"-invoice", "2026-09-01",
		"-delivery", "2026-09-03",
		"-item", "Widget:3",
		"-item", "Gadget:1",
	}))
	assert.Regexp(t, regexp.MustCompile(`created order ORD-\d+-\d+: 4 item\(s\), total 11\.00`), buf.String())

	buf.Reset()
	require.NoError(t, c.Run(ctx, []string{"orders"}))
	out := buf.String()
	assert.Contains(t, out, "Amutham Stores")
	assert.Contains(t, out, domain.StatusPending)
	assert.Contains(t, out, "1 order(s): 1 pending, 0 delivered")
}

func TestCreateCommand_BadItemSpec(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCLI(t)
	err := c.Run(context.Background(), []string{
		"create", "-customer", "Amutham Stores",
		"-invoice", "2026-09-01", "-delivery", "2026-09-01",
		"-item", "Widget",
	})
	require.Error(t, err)
}

func TestCreateCommand_UnknownProduct(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCLI(t)
	err := c.Run(context.Background(), []string{
		"create", "-customer", "Amutham Stores",
		"-invoice", "2026-09-01", "-delivery", "2026-09-01",
		"-item", "Unobtainium:1",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestDeliverAndHistoryCommands(t *testing.T) {
	t.Parallel()

	c, buf, store := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, c.Run(ctx, []string{
		"create", "-customer", "Amutham Stores",
		"-invoice", "2026-09-01", "-delivery", "2026-09-03",
		"-item", "Widget:3", "-item", "Gadget:1",
	}))

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	orderID := orders[0].OrderID

	buf.Reset()
	require.NoError(t, c.Run(ctx, []string{"deliver", orderID}))
	assert.Contains(t, buf.String(), "delivered and archived")

	buf.Reset()
	require.NoError(t, c.Run(ctx, []string{"history", "-q", "widget"}))
	out := buf.String()
	assert.Contains(t, out, orderID)
	assert.Contains(t, out, "1 archived order(s), 4 unit(s), revenue 11.00")

	buf.Reset()
	require.NoError(t, c.Run(ctx, []string{"history", "-q", "no-match"}))
	assert.Contains(t, buf.String(), "0 archived order(s)")

	err = c.Run(ctx, []string{"history", "-start", "soon"})
	assert.ErrorContains(t, err, "-start")
}

func TestDeliverCommand_TogglesBack(t *testing.T) {
	t.Parallel()

	c, buf, store := newTestCLI(t)
	ctx := context.Background()
	require.NoError(t, c.Run(ctx, []string{
		"create", "-customer", "Amutham Stores",
		"-invoice", "2026-09-01", "-delivery", "2026-09-01",
		"-item", "Widget:1",
	}))
	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	orderID := orders[0].OrderID

	require.NoError(t, c.Run(ctx, []string{"deliver", orderID}))
	buf.Reset()
	require.NoError(t, c.Run(ctx, []string{"deliver", orderID}))
	assert.Contains(t, buf.String(), "back to pending")
}
