// Package auth is the single source of truth for "who is the current user".
// All reads and writes of the persisted session token go through it; nothing
// else in the application touches the token store directly.
package auth

import (
	"errors"
	"time"

	"github.com/futbolink/futbolink/pkg/domain"
	"github.com/futbolink/futbolink/pkg/session"
)

// TokenStore persists exactly one opaque token string. An empty read with a
// nil error means logged out.
type TokenStore interface {
	Read() (string, error)
	Write(token string) error
	Erase() error
}

// State is the published authentication state. IsLoading is true only until
// the first Load completes; it never flips back.
type State struct {
	IsAuthenticated bool
	Role            domain.Role
	UserID          string
	Token           string
	IsLoading       bool
}

// Provider wraps the session decoder around a token store.
type Provider struct {
	store TokenStore
	now   func() time.Time
}

// New creates a Provider over the given store.
func New(store TokenStore) *Provider {
	return &Provider{store: store, now: time.Now}
}

// NewWithClock creates a Provider with an injected clock, for tests.
func NewWithClock(store TokenStore, now func() time.Time) *Provider {
	return &Provider{store: store, now: now}
}

// Load reads the persisted token once and decodes it. Any invalid token
// (absent, malformed, expired) is erased from the store before the
// unauthenticated state is returned; a partially-valid session is never
// surfaced. Load does not watch the store — session changes require the
// consumer tree to reinitialize.
func (p *Provider) Load() State {
	raw, err := p.store.Read()
	if err != nil || raw == "" {
		return State{}
	}

	s, err := session.Decode(raw, p.now())
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			p.store.Erase() //nolint:errcheck // best-effort cleanup of a dead token
		}
		return State{}
	}

	return State{
		IsAuthenticated: true,
		Role:            s.Role,
		UserID:          s.UserID,
		Token:           s.Token,
	}
}

// SaveToken persists a freshly issued token (login or registration success).
func (p *Provider) SaveToken(token string) error {
	return p.store.Write(token)
}

// Clear erases the persisted token (logout, delete-account).
func (p *Provider) Clear() error {
	return p.store.Erase()
}
