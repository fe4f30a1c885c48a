package app

import (
	"context"
	"fmt"
	"log"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/inmemory"
	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/journal"
	"github.com/abraham1744/amuthamorderapp/internal/adapters/outbound/sheets"
	"github.com/abraham1744/amuthamorderapp/internal/config"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// Application is the composition root: adapters wired to ports, services
// wired to adapters.
type Application struct {
	CreateOrder *CreateOrderService
	Orders      *OrdersService
	History     *HistoryService

	saga *ArchiveSaga
}

// Stores groups the outbound ports the services need, so tests can bootstrap
// an Application around the in-memory twins.
type Stores struct {
	Catalog ports.CatalogStore
	Orders  ports.OrderStore
	History ports.HistoryStore
	Journal ports.ArchiveJournal
}

// New wires services around the given stores.
func New(stores Stores) *Application {
	saga := NewArchiveSaga(stores.Orders, stores.History, stores.Journal)
	return &Application{
		CreateOrder: NewCreateOrderService(stores.Catalog, stores.Orders),
		Orders:      NewOrdersService(stores.Orders, saga),
		History:     NewHistoryService(stores.History),
		saga:        saga,
	}
}

// Bootstrap builds the production wiring from configuration: a sheets client
// authenticated by a signed-assertion session, and the durable journal when a
// DSN is configured, the in-memory one otherwise.
func Bootstrap(cfg config.FileConfig) (*Application, error) {
	account, err := sheets.LoadServiceAccount(cfg.Sheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	session, err := sheets.NewSession(account, sheets.WithTokenEndpoint(cfg.Sheets.TokenEndpoint))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	client, err := sheets.New(sheets.Options{
		Endpoint:      cfg.Sheets.Endpoint,
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		Tokens:        session,
		Timeout:       cfg.RequestTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	var jnl ports.ArchiveJournal
	if cfg.Journal.DSN != "" {
		store, err := journal.Open(cfg.Journal.DSN)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		jnl = store
	} else {
		log.Printf("no journal DSN configured; archive journal is in-memory only")
		jnl = inmemory.NewJournal()
	}

	return New(Stores{
		Catalog: client,
		Orders:  client,
		History: client,
		Journal: jnl,
	}), nil
}

// RecoverArchives replays unfinished archive journal entries. The server
// calls it once at startup.
func (a *Application) RecoverArchives(ctx context.Context) error {
	replayed, err := a.saga.Recover(ctx)
	if err != nil {
		return err
	}
	if replayed > 0 {
		log.Printf("archive recovery: %d history append(s) replayed", replayed)
	}
	return nil
}
