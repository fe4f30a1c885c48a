package ports

import (
	"context"
	"time"
)

// ArchiveState is the recorded progress of one toggle-to-delivered saga.
type ArchiveState string

const (
	// ArchivePending: saga started, status cells not yet written.
	ArchivePending ArchiveState = "pending"
	// ArchiveMarked: status cells written, history append still outstanding.
	ArchiveMarked ArchiveState = "marked"
	// ArchiveDone: history row appended; terminal.
	ArchiveDone ArchiveState = "archived"
	// ArchiveAbandoned: recovery found the order gone; terminal.
	ArchiveAbandoned ArchiveState = "abandoned"
)

// Terminal reports whether the state needs no further work.
func (s ArchiveState) Terminal() bool {
	return s == ArchiveDone || s == ArchiveAbandoned
}

// ArchiveRecord is one journal entry. ID is assigned by the saga (a uuid);
// OrderID names the order being archived.
type ArchiveRecord struct {
	ID        string
	OrderID   string
	State     ArchiveState
	UpdatedAt time.Time
}

// ArchiveJournal persists saga progress so a crash between the status write
// and the history append is recoverable instead of silently inconsistent.
//
// Error Contract: all methods wrap ErrJournal on storage failure.
type ArchiveJournal interface {
	// Put inserts or replaces the record keyed by its ID.
	Put(ctx context.Context, rec ArchiveRecord) error

	// Unfinished lists records in non-terminal states, oldest first.
	Unfinished(ctx context.Context) ([]ArchiveRecord, error)
}
