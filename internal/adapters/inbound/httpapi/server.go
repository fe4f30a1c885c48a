// Package httpapi exposes the order services over JSON HTTP. It is the
// inbound adapter the mobile client talks to; every route maps onto one
// service call, and remote-store failures surface as 502s.
package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abraham1744/amuthamorderapp/internal/app"
)

// Server wraps the HTTP listener and its routes.
type Server struct {
	server *http.Server
	app    *app.Application
}

// NewServer builds the server with its routes mounted.
func NewServer(addr string, application *app.Application) (*Server, error) {
	if addr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if application == nil {
		return nil, fmt.Errorf("application is required")
	}

	s := &Server{app: application}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleAddProduct)
		r.Get("/customers", s.handleListCustomers)
		r.Post("/customers", s.handleAddCustomer)
		r.Get("/orders", s.handleListOrders)
		r.Post("/orders", s.handleCreateOrder)
		r.Put("/orders/{orderID}/status", s.handleToggleStatus)
		r.Get("/history", s.handleHistory)
	})

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Handler returns the route tree, for tests driving the server through
// httptest without a listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving. It returns once the listener is up or an immediate
// startup error occurred.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("httpapi server error: %v", err)
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("httpapi server listening on %s", s.server.Addr)
		return nil
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
