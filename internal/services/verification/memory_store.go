package verification

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for single-process deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]*Challenge
}

// NewMemoryStore creates an empty challenge store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string]*Challenge)}
}

func slotKey(sessionID, transactionID string) string {
	return sessionID + ":" + transactionID
}

func (s *MemoryStore) Create(ctx context.Context, c *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(c.SessionID, c.TransactionID)
	if _, ok := s.pending[key]; ok {
		return ErrChallengePending
	}
	cp := *c
	s.pending[key] = &cp
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, transactionID string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.pending[slotKey(sessionID, transactionID)]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) Take(ctx context.Context, sessionID, transactionID string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey(sessionID, transactionID)
	c, ok := s.pending[key]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	delete(s.pending, key)
	return c, nil
}

// Len reports the number of pending challenges.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
