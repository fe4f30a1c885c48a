package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// Journal is the in-process archive journal used when no durable DSN is
// configured. State survives only the process lifetime.
type Journal struct {
	mu      sync.RWMutex
	records map[string]ports.ArchiveRecord
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{records: make(map[string]ports.ArchiveRecord)}
}

func (j *Journal) Put(ctx context.Context, rec ports.ArchiveRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records[rec.ID] = rec
	return nil
}

func (j *Journal) Unfinished(ctx context.Context) ([]ports.ArchiveRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]ports.ArchiveRecord, 0, len(j.records))
	for _, rec := range j.records {
		if !rec.State.Terminal() {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].UpdatedAt.Before(out[b].UpdatedAt) })
	return out, nil
}

// Record returns the journal entry by id, for assertions in tests.
func (j *Journal) Record(id string) (ports.ArchiveRecord, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	rec, ok := j.records[id]
	return rec, ok
}
