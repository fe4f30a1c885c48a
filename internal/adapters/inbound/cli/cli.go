// Package cli is the terminal inbound adapter: subcommands over the same
// services the HTTP API exposes, for operators working against the sheet
// without the mobile client.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abraham1744/amuthamorderapp/internal/app"
	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

// CLI drives the application from parsed subcommands. It handles only
// argument parsing and output rendering.
type CLI struct {
	application *app.Application
	out         io.Writer
}

// New creates the CLI adapter writing to the given stream.
func New(application *app.Application, out io.Writer) *CLI {
	return &CLI{application: application, out: out}
}

// Usage is printed when no subcommand or an unknown one is given.
const Usage = `usage: orderctl <command> [flags]

commands:
  products              list the product catalog
  add-product           -name NAME -price PRICE
  customers             list the customer catalog
  add-customer          -name NAME
  orders                list all orders with their line items and counters
  create                -customer NAME -invoice DATE -delivery DATE -item NAME:QTY [-item ...]
  deliver ORDER_ID      toggle the order's delivered state
  history               [-q TEXT] [-start DATE] [-end DATE] list archived orders
`

// Run dispatches the subcommand in args (the program arguments without the
// binary name).
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, Usage)
		return fmt.Errorf("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return c.runProducts(ctx)
	case "add-product":
		return c.runAddProduct(ctx, rest)
	case "customers":
		return c.runCustomers(ctx)
	case "add-customer":
		return c.runAddCustomer(ctx, rest)
	case "orders":
		return c.runOrders(ctx)
	case "create":
		return c.runCreate(ctx, rest)
	case "deliver":
		return c.runDeliver(ctx, rest)
	case "history":
		return c.runHistory(ctx, rest)
	default:
		fmt.Fprint(c.out, Usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *CLI) runProducts(ctx context.Context) error {
	cat, err := c.application.CreateOrder.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	renderProducts(c.out, cat.Products)
	return nil
}

func (c *CLI) runAddProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ContinueOnError)
	fs.SetOutput(c.out)
	name := fs.String("name", "", "product name")
	price := fs.String("price", "", "unit price, e.g. 2.50")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := parseProduct(*name, *price)
	if err != nil {
		return err
	}
	if err := c.application.CreateOrder.AddProduct(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added product %s\n", p.Name)
	return nil
}

func (c *CLI) runCustomers(ctx context.Context) error {
	cat, err := c.application.CreateOrder.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	renderCustomers(c.out, cat.Customers)
	return nil
}

func (c *CLI) runAddCustomer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-customer", flag.ContinueOnError)
	fs.SetOutput(c.out)
	name := fs.String("name", "", "customer name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	customer := domain.Customer{Name: *name}
	if err := c.application.CreateOrder.AddCustomer(ctx, customer); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added customer %s\n", customer.Name)
	return nil
}

func (c *CLI) runOrders(ctx context.Context) error {
	view, err := c.application.Orders.Load(ctx)
	if err != nil {
		return err
	}
	renderOrders(c.out, view)
	return nil
}

func (c *CLI) runCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(c.out)
	customer := fs.String("customer", "", "customer name")
	invoice := fs.String("invoice", "", "invoice date, YYYY-MM-DD")
	delivery := fs.String("delivery", "", "delivery date, YYYY-MM-DD")
	var items itemFlags
	fs.Var(&items, "item", "line item as NAME:QTY, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := c.application.CreateOrder.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	draft := domain.NewDraft(*invoice)
	draft.CustomerName = *customer
	draft.InvoiceDate = *invoice
	draft.DeliveryDate = *delivery
	for _, spec := range items {
		product, ok := domain.FindProduct(cat.Products, spec.name)
		if !ok {
			return fmt.Errorf("create: %w: %s", domain.ErrUnknownProduct, spec.name)
		}
		id := draft.AddItem()
		if err := draft.SetProduct(id, product); err != nil {
			return err
		}
		if err := draft.SetQuantity(id, spec.quantity); err != nil {
			return err
		}
	}

	order, err := c.application.CreateOrder.Submit(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created order %s: %d item(s), total %s\n",
		order.OrderID, order.TotalQuantity, order.TotalPrice.StringFixed(2))
	return nil
}

func (c *CLI) runDeliver(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("deliver: expected exactly one order id")
	}
	delivered, err := c.application.Orders.ToggleDelivered(ctx, args[0])
	if err != nil {
		return err
	}
	if delivered {
		fmt.Fprintf(c.out, "order %s delivered and archived\n", args[0])
	} else {
		fmt.Fprintf(c.out, "order %s back to pending\n", args[0])
	}
	return nil
}

func (c *CLI) runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(c.out)
	query := fs.String("q", "", "substring matched against id, customer, products")
	start := fs.String("start", "", "delivery date range start, YYYY-MM-DD")
	end := fs.String("end", "", "delivery date range end, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := domain.HistoryFilter{Query: *query}
	if *start != "" {
		t, err := domain.ParseDate(*start)
		if err != nil {
			return fmt.Errorf("history: -start: %w", err)
		}
		filter.Start = t
	}
	if *end != "" {
		t, err := domain.ParseDate(*end)
		if err != nil {
			return fmt.Errorf("history: -end: %w", err)
		}
		filter.End = t
	}

	view, err := c.application.History.Load(ctx, filter)
	if err != nil {
		return err
	}
	renderHistory(c.out, view)
	return nil
}

// itemFlags collects repeated -item NAME:QTY values. The product name may
// itself contain colons; the quantity is whatever follows the last one.
type itemFlags []itemSpec

type itemSpec struct {
	name     string
	quantity int
}

func (f *itemFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, it := range *f {
		parts = append(parts, fmt.Sprintf("%s:%d", it.name, it.quantity))
	}
	return strings.Join(parts, ",")
}

func (f *itemFlags) Set(value string) error {
	idx := strings.LastIndex(value, ":")
	if idx <= 0 || idx == len(value)-1 {
		return fmt.Errorf("expected NAME:QTY, got %q", value)
	}
	qty, err := strconv.Atoi(value[idx+1:])
	if err != nil {
		return fmt.Errorf("expected NAME:QTY, got %q", value)
	}
	*f = append(*f, itemSpec{name: value[:idx], quantity: qty})
	return nil
}

func parseProduct(name, price string) (domain.Product, error) {
	p := domain.Product{Name: name}
	if price == "" {
		return domain.Product{}, fmt.Errorf("add-product: -price is required")
	}
	var err error
	p.Price, err = domain.ParsePrice(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("add-product: -price: %w", err)
	}
	return p, nil
}
