package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/abraham1744/amuthamorderapp/internal/app"
	"github.com/abraham1744/amuthamorderapp/internal/domain"
)

func renderProducts(out io.Writer, products []domain.Product) {
	table := tablewriter.NewTable(out)
	table.Header("Product", "Price")
	for _, p := range products {
		table.Append(p.Name, p.Price.StringFixed(2))
	}
	table.Render()
	fmt.Fprintf(out, "%d product(s)\n", len(products))
}

func renderCustomers(out io.Writer, customers []domain.Customer) {
	table := tablewriter.NewTable(out)
	table.Header("Customer")
	for _, c := range customers {
		table.Append(c.Name)
	}
	table.Render()
	fmt.Fprintf(out, "%d customer(s)\n", len(customers))
}

func renderOrders(out io.Writer, view app.OrdersView) {
	table := tablewriter.NewTable(out)
	table.Header("Order", "Customer", "Delivery", "Qty", "Total", "Status")
	for _, o := range view.Orders {
		table.Append(
			o.OrderID,
			o.CustomerName,
			o.DeliveryDate,
			strconv.Itoa(o.TotalQuantity),
			o.TotalPrice.StringFixed(2),
			o.Status,
		)
	}
	table.Render()
	fmt.Fprintf(out, "%d order(s): %d pending, %d delivered\n",
		view.Stats.TotalOrders, view.Stats.PendingOrders, view.Stats.DeliveredOrders)
}

func renderHistory(out io.Writer, view app.HistoryView) {
	table := tablewriter.NewTable(out)
	table.Header("Order", "Customer", "Delivery", "Qty", "Total", "Archived At")
	for _, e := range view.Entries {
		table.Append(
			e.OrderID,
			e.CustomerName,
			e.DeliveryDate,
			strconv.Itoa(e.TotalQuantity),
			e.TotalPrice.StringFixed(2),
			e.ArchivedAt,
		)
	}
	table.Render()
	fmt.Fprintf(out, "%d archived order(s), %d unit(s), revenue %s\n",
		view.Summary.Count, view.Summary.TotalQuantity, view.Summary.TotalRevenue.StringFixed(2))
}
