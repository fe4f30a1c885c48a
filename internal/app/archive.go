package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/abraham1744/amuthamorderapp/internal/domain"
	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// ArchiveSaga drives the two-step deliver-and-archive sequence with its
// progress journaled, so a crash between the status write and the history
// append leaves a replayable record instead of an order that shows delivered
// but never reaches history.
type ArchiveSaga struct {
	orders  ports.OrderStore
	history ports.HistoryStore
	journal ports.ArchiveJournal
	now     func() time.Time
	newID   func() string
}

// NewArchiveSaga wires the saga to its stores and journal.
func NewArchiveSaga(orders ports.OrderStore, history ports.HistoryStore, journal ports.ArchiveJournal) *ArchiveSaga {
	return &ArchiveSaga{
		orders:  orders,
		history: history,
		journal: journal,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Deliver marks the order delivered and archives it, journaling each step.
// Exactly one history row is appended per successful call; the journal entry
// ends in the archived state.
func (s *ArchiveSaga) Deliver(ctx context.Context, order domain.Order) error {
	rec := ports.ArchiveRecord{
		ID:        s.newID(),
		OrderID:   order.OrderID,
		State:     ports.ArchivePending,
		UpdatedAt: s.now(),
	}
	if err := s.journal.Put(ctx, rec); err != nil {
		return err
	}

	order.Status = domain.StatusDelivered
	order.Delivered = true
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.Status, order.Delivered); err != nil {
		return fmt.Errorf("deliver %s: %w", order.OrderID, err)
	}

	if err := s.put(ctx, &rec, ports.ArchiveMarked); err != nil {
		return err
	}

	if err := s.history.Archive(ctx, order); err != nil {
		// Journal stays at "marked": Recover replays the append later.
		return fmt.Errorf("deliver %s: %w", order.OrderID, err)
	}

	return s.put(ctx, &rec, ports.ArchiveDone)
}

// Recover replays journal entries left in non-terminal states by an earlier
// crash or failure. It returns the number of history rows appended.
//
// A "pending" entry whose order is not delivered is abandoned: the status
// write never happened, so the user simply retries the toggle. A "pending"
// entry whose order shows delivered, and every "marked" entry, gets its
// missing history append replayed against the order's current header.
func (s *ArchiveSaga) Recover(ctx context.Context) (int, error) {
	unfinished, err := s.journal.Unfinished(ctx)
	if err != nil {
		return 0, err
	}
	if len(unfinished) == 0 {
		return 0, nil
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("recover archives: %w", err)
	}
	byID := make(map[string]domain.Order, len(orders))
	for _, o := range orders {
		byID[o.OrderID] = o
	}

	replayed := 0
	for _, rec := range unfinished {
		order, found := byID[rec.OrderID]
		switch {
		case !found:
			log.Printf("archive recovery: order %s gone, abandoning journal entry %s", rec.OrderID, rec.ID)
			if err := s.put(ctx, &rec, ports.ArchiveAbandoned); err != nil {
				return replayed, err
			}
		case rec.State == ports.ArchivePending && !order.Delivered:
			// Status write never landed; nothing to replay.
			if err := s.put(ctx, &rec, ports.ArchiveAbandoned); err != nil {
				return replayed, err
			}
		default:
			if err := s.history.Archive(ctx, order); err != nil {
				return replayed, fmt.Errorf("recover archives: %s: %w", rec.OrderID, err)
			}
			replayed++
			log.Printf("archive recovery: replayed history append for order %s", rec.OrderID)
			if err := s.put(ctx, &rec, ports.ArchiveDone); err != nil {
				return replayed, err
			}
		}
	}
	return replayed, nil
}

func (s *ArchiveSaga) put(ctx context.Context, rec *ports.ArchiveRecord, state ports.ArchiveState) error {
	rec.State = state
	rec.UpdatedAt = s.now()
	return s.journal.Put(ctx, *rec)
}
