package ledger

import (
	"context"
	"sync"

	"fraudshield/internal/models"
)

// MemoryStore keeps ledgers for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	seq     int64
	entries map[string][]models.LedgerEntry // sessionID → entries
}

// NewMemoryStore creates an in-memory ledger store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]models.LedgerEntry)}
}

func (s *MemoryStore) Append(ctx context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry.Seq = s.seq
	s.entries[entry.SessionID] = append(s.entries[entry.SessionID], copyEntry(*entry))
	return nil
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[sessionID]
	out := make([]models.LedgerEntry, len(all))
	for i, e := range all {
		out[i] = copyEntry(e)
	}
	return out, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, sessionID, transactionID string, final models.Decision) (*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.entries[sessionID]
	for i := range entries {
		if entries[i].TransactionID == transactionID {
			entries[i].FinalDecision = final
			out := copyEntry(entries[i])
			return &out, nil
		}
	}
	return nil, ErrEntryNotFound
}

func copyEntry(e models.LedgerEntry) models.LedgerEntry {
	if e.Features != nil {
		f := make(models.JSON, len(e.Features))
		for k, v := range e.Features {
			f[k] = v
		}
		e.Features = f
	}
	return e
}
