package app

import (
	"context"
	"fmt"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// HistoryView is the filtered archive plus its summary line.
type HistoryView struct {
	Entries []domain.ArchivedOrder
	Summary domain.HistorySummary
}

// HistoryService backs the history screen.
type HistoryService struct {
	history ports.HistoryStore
}

// NewHistoryService wires the service to the history store.
func NewHistoryService(history ports.HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

// Load fetches the full archive and applies the filter client-side, the way
// the screen always has; the store is never asked to filter.
func (s *HistoryService) Load(ctx context.Context, filter domain.HistoryFilter) (HistoryView, error) {
	entries, err := s.history.ListHistory(ctx)
	if err != nil {
		return HistoryView{}, fmt.Errorf("load history: %w", err)
	}
	filtered := domain.FilterHistory(entries, filter)
	return HistoryView{
		Entries: filtered,
		Summary: domain.SummarizeHistory(filtered),
	}, nil
}
