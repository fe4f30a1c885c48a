package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// DecodeError reports a sheet row that does not match its table schema. Row
// is the 1-based sheet row (header included), Column the 1-based column.
type DecodeError struct {
	Table  string
	Row    int
	Column int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s row %d column %d: %s", e.Table, e.Row, e.Column, e.Reason)
}

// Unwrap ties every decode failure to ports.ErrBadRow for errors.Is checks.
func (e *DecodeError) Unwrap() error {
	return ports.ErrBadRow
}

// rowDecoder walks one row's cells, accumulating the first schema violation.
// Cells beyond the row's length read as blank: the values API omits trailing
// empty cells, which is legitimate shape, unlike malformed content.
type rowDecoder struct {
	table string
	row   []any
	num   int // 1-based sheet row
	err   *DecodeError
}

func (d *rowDecoder) fail(col int, format string, args ...any) {
	if d.err == nil {
		d.err = &DecodeError{Table: d.table, Row: d.num, Column: col, Reason: fmt.Sprintf(format, args...)}
	}
}

func (d *rowDecoder) cell(col int) any {
	if col-1 < len(d.row) {
		return d.row[col-1]
	}
	return nil
}

func (d *rowDecoder) str(col int) string {
	switch v := d.cell(col).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (d *rowDecoder) integer(col int) int {
	switch v := d.cell(col).(type) {
	case nil:
		return 0
	case float64:
		if v != float64(int64(v)) {
			d.fail(col, "expected integer, got %v", v)
			return 0
		}
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			d.fail(col, "expected integer, got %q", v)
			return 0
		}
		return n
	default:
		d.fail(col, "expected integer, got %T", v)
		return 0
	}
}

func (d *rowDecoder) amount(col int) decimal.Decimal {
	switch v := d.cell(col).(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(v, "$"))
		if s == "" {
			return decimal.Zero
		}
		dec, err := decimal.NewFromString(s)
		if err != nil {
			d.fail(col, "expected amount, got %q", v)
			return decimal.Zero
		}
		return dec
	default:
		d.fail(col, "expected amount, got %T", v)
		return decimal.Zero
	}
}

func (d *rowDecoder) boolean(col int) bool {
	switch v := d.cell(col).(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false":
			return false
		case "true":
			return true
		default:
			d.fail(col, "expected boolean, got %q", v)
			return false
		}
	default:
		d.fail(col, "expected boolean, got %T", v)
		return false
	}
}

// sheetRow converts a 0-based data index (after the discarded header) into
// the 1-based sheet row number.
func sheetRow(dataIdx int) int {
	return dataIdx + 2
}

func decodeProduct(row []any, dataIdx int) (domain.Product, error) {
	d := rowDecoder{table: "Products", row: row, num: sheetRow(dataIdx)}
	p := domain.Product{
		Name:  d.str(1),
		Price: d.amount(2),
	}
	if d.err != nil {
		return domain.Product{}, d.err
	}
	return p, nil
}

func decodeCustomer(row []any, dataIdx int) (domain.Customer, error) {
	d := rowDecoder{table: "Customers", row: row, num: sheetRow(dataIdx)}
	c := domain.Customer{Name: d.str(1)}
	if d.err != nil {
		return domain.Customer{}, d.err
	}
	return c, nil
}

func decodeOrder(row []any, dataIdx int) (domain.Order, error) {
	d := rowDecoder{table: "Orders", row: row, num: sheetRow(dataIdx)}
	o := domain.Order{
		OrderID:       d.str(1),
		CustomerName:  d.str(2),
		InvoiceDate:   d.str(3),
		DeliveryDate:  d.str(4),
		TotalQuantity: d.integer(5),
		TotalPrice:    d.amount(6),
		Status:        d.str(7),
		Delivered:     d.boolean(8),
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if d.err != nil {
		return domain.Order{}, d.err
	}
	return o, nil
}

func decodeLineItem(row []any, dataIdx int) (domain.LineItem, error) {
	d := rowDecoder{table: "OrderDetails", row: row, num: sheetRow(dataIdx)}
	it := domain.LineItem{
		OrderID:     d.str(1),
		ProductName: d.str(2),
		Quantity:    d.integer(3),
		Price:       d.amount(4),
		Subtotal:    d.amount(5),
	}
	if d.err != nil {
		return domain.LineItem{}, d.err
	}
	return it, nil
}

func decodeArchived(row []any, dataIdx int) (domain.ArchivedOrder, error) {
	d := rowDecoder{table: "OrderHistory", row: row, num: sheetRow(dataIdx)}
	a := domain.ArchivedOrder{
		Order: domain.Order{
			OrderID:       d.str(1),
			CustomerName:  d.str(2),
			InvoiceDate:   d.str(3),
			DeliveryDate:  d.str(4),
			TotalQuantity: d.integer(5),
			TotalPrice:    d.amount(6),
			Status:        d.str(7),
			Delivered:     d.boolean(8),
		},
		ArchivedAt: d.str(9),
	}
	if d.err != nil {
		return domain.ArchivedOrder{}, d.err
	}
	return a, nil
}

// Encoders. Column order is the table schema; amounts are written as plain
// decimal strings, which USER_ENTERED input parses back into numbers.

func encodeProduct(p domain.Product) []any {
	return []any{p.Name, p.Price.String()}
}

func encodeCustomer(c domain.Customer) []any {
	return []any{c.Name}
}

func encodeOrder(o domain.Order) []any {
	return []any{
		o.OrderID,
		o.CustomerName,
		o.InvoiceDate,
		o.DeliveryDate,
		o.TotalQuantity,
		o.TotalPrice.StringFixed(2),
		o.Status,
		o.Delivered,
	}
}

func encodeLineItem(it domain.LineItem) []any {
	return []any{
		it.OrderID,
		it.ProductName,
		it.Quantity,
		it.Price.StringFixed(2),
		it.Subtotal.StringFixed(2),
	}
}

func encodeArchived(o domain.Order, timestamp string) []any {
	return append(encodeOrder(o), timestamp)
}
