package session

import (
	"context"
	"sync"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/auth"
)

var _ auth.TokenStore = (*MemoryStore)(nil)

// MemoryStore lista de revocación local al proceso (sin REDIS_URL).
// Las entradas vencidas se purgan al revocar.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore construye el store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marca el jti como revocado hasta until.
func (s *MemoryStore) Revoke(_ context.Context, jti string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, k)
		}
	}
	if until.After(now) {
		s.revoked[jti] = until
	}
	return nil
}

// IsRevoked indica si el jti sigue revocado.
func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[jti]
	return ok && exp.After(s.now()), nil
}
