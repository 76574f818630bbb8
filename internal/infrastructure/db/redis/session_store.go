package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playerdash/gateway/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions in Redis so multiple gateway instances can
// share them. Redis key TTLs mirror the session expiry, so expired sessions
// vanish without a sweeper.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}

func (s *SessionStore) Create(ctx context.Context, user domain.User) (*domain.Session, error) {
	token, err := domain.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := domain.Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Key TTL normally handles expiry; double-check against clock skew.
	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, nil
	}

	return &sess, nil
}

func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
