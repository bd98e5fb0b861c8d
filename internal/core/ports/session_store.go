package ports

import (
	"context"

	"github.com/influenceai/influence-frontend/internal/core/domain"
)

// SessionRecord is the durable state of one browser session: the backend
// access token plus the last identity resolved from it. User is a
// write-through cache for observability; the guard re-resolves it against
// the backend on every navigation and never trusts the cached copy.
type SessionRecord struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

// SessionStore persists session records keyed by opaque session id.
// Invariant: exactly one token per session id, and storing a new token
// always drops the previously resolved user so a stale role can never leak
// into a fresh session.
type SessionStore interface {
	Get(ctx context.Context, sid string) (*SessionRecord, error)
	// SetToken replaces the record with one holding only the token.
	SetToken(ctx context.Context, sid, token string) error
	// SetUser caches the identity most recently resolved for the current token.
	SetUser(ctx context.Context, sid string, user *domain.User) error
	// Clear removes the record entirely (logout, failed resolution).
	Clear(ctx context.Context, sid string) error
}
