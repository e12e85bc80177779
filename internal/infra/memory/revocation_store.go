package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore is an in-memory implementation of auth.RevocationStore.
type RevocationStore struct {
	clock   func() time.Time
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		clock:   time.Now,
		revoked: make(map[string]time.Time),
	}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = until
	s.pruneLocked()
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return until.After(s.clock()), nil
}

// pruneLocked drops entries whose tokens have expired anyway.
func (s *RevocationStore) pruneLocked() {
	now := s.clock()
	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
		}
	}
}
