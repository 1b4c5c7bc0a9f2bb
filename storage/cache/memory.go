package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type memoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

var _ core.SessionStore = (*memoryStore)(nil)

// NewMemoryStore is used when no redis server is configured.
// Revocations do not survive a restart nor are they shared between instances.
func NewMemoryStore() *memoryStore {
	return &memoryStore{revoked: make(map[string]time.Time)}
}

func (s *memoryStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := core.NowFunc()
	s.revoked[sessionID] = now.Add(ttl)

	// drop what has expired on the way
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	return nil
}

func (s *memoryStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if !exp.After(core.NowFunc()) {
		delete(s.revoked, sessionID)
		return false, nil
	}
	return true, nil
}
