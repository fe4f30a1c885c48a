package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

type errorBody struct {
	Error string `json:"error"`
}

type productDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type customerDTO struct {
	Name string `json:"name"`
}

type lineItemDTO struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderDTO struct {
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   string          `json:"invoice_date"`
	DeliveryDate  string          `json:"delivery_date"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	Delivered     bool            `json:"delivered"`
	Details       []lineItemDTO   `json:"details,omitempty"`
}

type historyEntryDTO struct {
	orderDTO
	ArchivedAt string `json:"archived_at"`
}

type createOrderRequest struct {
	CustomerName string `json:"customer_name"`
	InvoiceDate  string `json:"invoice_date"`
	DeliveryDate string `json:"delivery_date"`
	Items        []struct {
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
	} `json:"items"`
}

func toLineItemDTOs(items []domain.LineItem) []lineItemDTO {
	out := make([]lineItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemDTO{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

func toOrderDTO(o domain.Order, details []domain.LineItem) orderDTO {
	return orderDTO{
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		InvoiceDate:   o.InvoiceDate,
		DeliveryDate:  o.DeliveryDate,
		TotalQuantity: o.TotalQuantity,
		TotalPrice:    o.TotalPrice,
		Status:        o.Status,
		Delivered:     o.Delivered,
		Details:       toLineItemDTOs(details),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	cat, err := s.app.CreateOrder.LoadCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]productDTO, 0, len(cat.Products))
	for _, p := range cat.Products {
		out = append(out, productDTO{Name: p.Name, Price: p.Price})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var in productDTO
	if !decodeBody(w, r, &in) {
		return
	}
	if err := s.app.CreateOrder.AddProduct(r.Context(), domain.Product{Name: in.Name, Price: in.Price}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	cat, err := s.app.CreateOrder.LoadCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]customerDTO, 0, len(cat.Customers))
	for _, c := range cat.Customers {
		out = append(out, customerDTO{Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var in customerDTO
	if !decodeBody(w, r, &in) {
		return
	}
	if err := s.app.CreateOrder.AddCustomer(r.Context(), domain.Customer{Name: in.Name}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	view, err := s.app.Orders.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orders := make([]orderDTO, 0, len(view.Orders))
	for _, o := range view.Orders {
		orders = append(orders, toOrderDTO(o.Order, o.Details))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"stats": map[string]any{
			"total_orders":         view.Stats.TotalOrders,
			"pending_orders":       view.Stats.PendingOrders,
			"delivered_orders":     view.Stats.DeliveredOrders,
			"per_product_quantity": view.Stats.PerProductQuantity,
		},
	})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in createOrderRequest
	if !decodeBody(w, r, &in) {
		return
	}

	cat, err := s.app.CreateOrder.LoadCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	draft := domain.NewDraft(in.InvoiceDate)
	draft.CustomerName = in.CustomerName
	draft.InvoiceDate = in.InvoiceDate
	draft.DeliveryDate = in.DeliveryDate
	for _, item := range in.Items {
		product, ok := domain.FindProduct(cat.Products, item.ProductName)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown product: " + item.ProductName})
			return
		}
		id := draft.AddItem()
		if err := draft.SetProduct(id, product); err != nil {
			writeError(w, err)
			return
		}
		if err := draft.SetQuantity(id, item.Quantity); err != nil {
			writeError(w, err)
			return
		}
	}

	order, err := s.app.CreateOrder.Submit(r.Context(), draft)
	if err != nil {
		if errors.Is(err, ports.ErrPartialSubmit) {
			// Header landed, line items did not. Report which order is
			// affected so the operator can repair the sheet.
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error":    "order header written but line items failed",
				"order_id": order.OrderID,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderDTO(order, nil))
}

func (s *Server) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	delivered, err := s.app.Orders.ToggleDelivered(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	status := domain.StatusPending
	if delivered {
		status = domain.StatusDelivered
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order_id":  orderID,
		"status":    status,
		"delivered": delivered,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	filter := domain.HistoryFilter{Query: r.URL.Query().Get("q")}
	if start := r.URL.Query().Get("start"); start != "" {
		t, err := domain.ParseDate(start)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "start: expected YYYY-MM-DD"})
			return
		}
		filter.Start = t
	}
	if end := r.URL.Query().Get("end"); end != "" {
		t, err := domain.ParseDate(end)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "end: expected YYYY-MM-DD"})
			return
		}
		filter.End = t
	}

	view, err := s.app.History.Load(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	entries := make([]historyEntryDTO, 0, len(view.Entries))
	for _, e := range view.Entries {
		entries = append(entries, historyEntryDTO{
			orderDTO:   toOrderDTO(e.Order, e.Details),
			ArchivedAt: e.ArchivedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"summary": map[string]any{
			"count":          view.Summary.Count,
			"total_quantity": view.Summary.TotalQuantity,
			"total_revenue":  view.Summary.TotalRevenue,
		},
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("httpapi: encode response: %v", err)
	}
}

// writeError maps service errors onto HTTP statuses: caller mistakes are
// 400s, a missing order is 404, and any upstream spreadsheet failure is a
// 502. Error text comes from the wrapped chain, which never carries token or
// key material.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case isValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrRemote),
		errors.Is(err, ports.ErrAuthentication),
		errors.Is(err, ports.ErrBadRow):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrEmptyName,
		domain.ErrNegativePrice,
		domain.ErrNoCustomer,
		domain.ErrNoItems,
		domain.ErrItemIncomplete,
		domain.ErrBadDate,
		domain.ErrUnknownItem,
		domain.ErrUnknownProduct,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
