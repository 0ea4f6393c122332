// Package session decodes FutboLink bearer tokens on the client side.
//
// Tokens are issued and signed by the API; the client never verifies the
// signature, it only reads the claims it needs to render the right views.
// Anything the decoder cannot make sense of is treated exactly like a
// missing token.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/futbolink/futbolink/pkg/domain"
)

// ErrInvalidSession marks a token that is absent, malformed, or expired.
// Callers must erase the persisted token when they see this error.
var ErrInvalidSession = errors.New("invalid session")

// rolePrefix is the marker the auth service puts in front of every authority.
const rolePrefix = "ROLE_"

// Session is the decoded view of a bearer token.
type Session struct {
	Token     string
	Role      domain.Role
	UserID    string
	ExpiresAt time.Time
}

// claims is the shape of the token payload the client cares about.
type claims struct {
	Authorities []string `json:"authorities"`
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	jwt.RegisteredClaims
}

// Decode parses a raw bearer token and checks its expiry against now.
// It returns an error wrapping ErrInvalidSession when the token is empty,
// structurally malformed, carries no expiry, or has expired. Decoding is a
// pure function of the input; nothing is cached.
func Decode(raw string, now time.Time) (*Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: no token", ErrInvalidSession)
	}

	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if c.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: token has no expiry", ErrInvalidSession)
	}
	// Strictly-greater: a token expiring exactly now is already dead.
	if !c.ExpiresAt.Time.After(now) {
		return nil, fmt.Errorf("%w: token expired at %s", ErrInvalidSession, c.ExpiresAt.Time.Format(time.RFC3339))
	}

	return &Session{
		Token:     raw,
		Role:      roleFromAuthorities(c.Authorities),
		UserID:    userIDFromClaims(c),
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// roleFromAuthorities derives the single active role from the first
// authority, stripping the ROLE_ prefix exactly once.
func roleFromAuthorities(authorities []string) domain.Role {
	if len(authorities) == 0 {
		return ""
	}
	return domain.Role(strings.TrimPrefix(authorities[0], rolePrefix))
}

// userIDFromClaims tries the known user-id claim names in priority order:
// userId, then the registered subject, then email.
func userIDFromClaims(c claims) string {
	if c.UserID != "" {
		return c.UserID
	}
	if c.Subject != "" {
		return c.Subject
	}
	return c.Email
}
