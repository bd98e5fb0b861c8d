package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// SessionStore persists session records in Redis.
// Key format: session:<sid>
type SessionStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// defaultTTL bounds sessions whose token carries no usable expiry.
func NewSessionStore(client *redis.Client, defaultTTL time.Duration) *SessionStore {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &SessionStore{client: client, defaultTTL: defaultTTL}
}

// Get returns the session record for sid, or ErrNoSession.
func (s *SessionStore) Get(ctx context.Context, sid string) (*ports.SessionRecord, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var rec ports.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("session get: decode: %w", err)
	}
	return &rec, nil
}

// SetToken replaces the record for sid with one holding only the new token.
// Any user resolved for a previous token is dropped with it, so a stale role
// can never survive a token change. The key expires with the token.
func (s *SessionStore) SetToken(ctx context.Context, sid, token string) error {
	raw, _ := json.Marshal(ports.SessionRecord{Token: token})
	if err := s.client.Set(ctx, s.key(sid), raw, s.tokenTTL(token)).Err(); err != nil {
		return fmt.Errorf("session set token: %w", err)
	}
	return nil
}

// SetUser records the identity most recently resolved for the current token,
// preserving the key's remaining TTL. A session that disappeared between the
// resolution and the write-through is not resurrected.
func (s *SessionStore) SetUser(ctx context.Context, sid string, user *domain.User) error {
	rec, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	rec.User = user
	raw, _ := json.Marshal(rec)
	if err := s.client.Set(ctx, s.key(sid), raw, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("session set user: %w", err)
	}
	return nil
}

// Clear removes the session record entirely.
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}

// tokenTTL derives the key lifetime from the token's exp claim. The claim is
// read without signature verification — the signing secret belongs to the
// backend, and the expiry only sizes local storage; authorization always
// goes back to the backend.
func (s *SessionStore) tokenTTL(token string) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.defaultTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.defaultTTL
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 || ttl > s.defaultTTL {
		return s.defaultTTL
	}
	return ttl
}
