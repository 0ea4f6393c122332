package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/futbolink/futbolink/pkg/domain"
)

// signToken builds a token string with the given claims. The decoder ignores
// the signature, so any key works.
func signToken(t *testing.T, c jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func TestDecodeValidToken(t *testing.T) {
	now := time.Now()
	raw := signToken(t, jwt.MapClaims{
		"authorities": []string{"ROLE_PLAYER"},
		"userId":      "user-7",
		"exp":         now.Add(time.Hour).Unix(),
	})

	s, err := Decode(raw, now)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if s.Role != domain.RolePlayer {
		t.Errorf("Role = %q, want %q", s.Role, domain.RolePlayer)
	}
	if s.UserID != "user-7" {
		t.Errorf("UserID = %q, want %q", s.UserID, "user-7")
	}
	if s.Token != raw {
		t.Errorf("Token not preserved")
	}
}

func TestDecodeRolePrefixStrippedOnce(t *testing.T) {
	tests := []struct {
		name      string
		authority string
		want      domain.Role
	}{
		{"player", "ROLE_PLAYER", domain.RolePlayer},
		{"team", "ROLE_TEAM", domain.RoleTeam},
		{"double prefix stripped once", "ROLE_ROLE_TEAM", "ROLE_TEAM"},
		{"no prefix untouched", "PLAYER", domain.RolePlayer},
	}
	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := signToken(t, jwt.MapClaims{
				"authorities": []string{tt.authority},
				"exp":         now.Add(time.Hour).Unix(),
			})
			s, err := Decode(raw, now)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if s.Role != tt.want {
				t.Errorf("Role = %q, want %q", s.Role, tt.want)
			}
		})
	}
}

func TestDecodeNoAuthorities(t *testing.T) {
	now := time.Now()
	raw := signToken(t, jwt.MapClaims{
		"sub": "someone",
		"exp": now.Add(time.Hour).Unix(),
	})
	s, err := Decode(raw, now)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if s.Role != "" {
		t.Errorf("Role = %q, want empty", s.Role)
	}
}

func TestDecodeUserIDFallbackOrder(t *testing.T) {
	now := time.Now()
	exp := now.Add(time.Hour).Unix()
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"userId wins", jwt.MapClaims{"userId": "u1", "sub": "s1", "email": "e@x", "exp": exp}, "u1"},
		{"sub second", jwt.MapClaims{"sub": "s1", "email": "e@x", "exp": exp}, "s1"},
		{"email last", jwt.MapClaims{"email": "e@x", "exp": exp}, "e@x"},
		{"nothing", jwt.MapClaims{"exp": exp}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(signToken(t, tt.claims), now)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if s.UserID != tt.want {
				t.Errorf("UserID = %q, want %q", s.UserID, tt.want)
			}
		})
	}
}

func TestDecodeInvalidTokens(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"garbage", "not-a-token"},
		{"wrong segments", "a.b"},
		{"bad base64", "!!!.###.$$$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.raw, now); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidSession", tt.raw, err)
			}
		})
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	now := time.Now()
	raw := signToken(t, jwt.MapClaims{
		"authorities": []string{"ROLE_PLAYER"},
		"exp":         now.Add(-time.Second).Unix(),
	})
	if _, err := Decode(raw, now); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expired token: error = %v, want ErrInvalidSession", err)
	}
}

func TestDecodeExpiryExactlyNowIsInvalid(t *testing.T) {
	now := time.Unix(1_900_000_000, 0)
	raw := signToken(t, jwt.MapClaims{"exp": now.Unix()})
	if _, err := Decode(raw, now); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("exp == now: error = %v, want ErrInvalidSession", err)
	}
}

func TestDecodeMissingExpiryIsInvalid(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"authorities": []string{"ROLE_TEAM"}})
	if _, err := Decode(raw, time.Now()); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("missing exp: error = %v, want ErrInvalidSession", err)
	}
}
