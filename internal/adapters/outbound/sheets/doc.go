// Package sheets is the outbound adapter over the Google Sheets v4 values
// API. It maps the five logical tables (Products, Customers, Orders,
// OrderDetails, OrderHistory) onto fixed column ranges, owns the bearer
// session obtained through a signed-assertion exchange, and decodes rows
// through an explicit schema step that fails loudly on malformed cells
// instead of substituting defaults.
package sheets
