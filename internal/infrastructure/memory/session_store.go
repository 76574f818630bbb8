// Package memory provides the single-process session store. Deployments
// running more than one gateway instance should use the Redis-backed store
// behind the same interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/playerdash/gateway/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// SessionStore keeps sessions in a mutex-guarded map. Lookups treat expired
// entries as absent and evict them; Sweep purges the rest in bulk.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	ttl      time.Duration

	now func() time.Time // overridable in tests
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create mints a session with a fresh random token and a fixed-window expiry
// of now + TTL. Sessions are never renewed on access.
func (s *SessionStore) Create(_ context.Context, user domain.User) (*domain.Session, error) {
	token, err := domain.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := domain.Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	return &sess, nil
}

// Get returns the session for token, or (nil, nil) for unknown or expired
// tokens. Expired entries are evicted on the way out.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}

	return &sess, nil
}

// Destroy removes the session unconditionally. Idempotent.
func (s *SessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Sweep evicts all expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions on the given interval until ctx is cancelled.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len reports the number of stored sessions, expired entries included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
