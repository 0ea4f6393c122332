package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/futbolink/futbolink/pkg/domain"
)

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	token   string
	readErr error
	erased  int
}

func (m *memStore) Read() (string, error) { return m.token, m.readErr }
func (m *memStore) Write(t string) error  { m.token = t; return nil }
func (m *memStore) Erase() error          { m.token = ""; m.erased++; return nil }

func signToken(t *testing.T, c jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func TestLoadNoToken(t *testing.T) {
	store := &memStore{}
	st := New(store).Load()
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true for empty store")
	}
	if st.Role != "" || st.UserID != "" || st.Token != "" {
		t.Errorf("derived fields not empty: %+v", st)
	}
	if store.erased != 0 {
		t.Errorf("erased %d times, want 0 (nothing to clean)", store.erased)
	}
}

func TestLoadValidToken(t *testing.T) {
	now := time.Now()
	store := &memStore{token: signToken(t, jwt.MapClaims{
		"authorities": []string{"ROLE_TEAM"},
		"userId":      "u-3",
		"exp":         now.Add(time.Hour).Unix(),
	})}

	st := NewWithClock(store, func() time.Time { return now }).Load()
	if !st.IsAuthenticated {
		t.Fatal("IsAuthenticated = false for valid token")
	}
	if st.Role != domain.RoleTeam {
		t.Errorf("Role = %q, want TEAM", st.Role)
	}
	if st.UserID != "u-3" {
		t.Errorf("UserID = %q, want u-3", st.UserID)
	}
	if st.Token == "" {
		t.Error("Token not published")
	}
}

func TestLoadExpiredTokenErasesStore(t *testing.T) {
	now := time.Now()
	store := &memStore{token: signToken(t, jwt.MapClaims{
		"authorities": []string{"ROLE_PLAYER"},
		"exp":         now.Add(-time.Second).Unix(),
	})}

	st := NewWithClock(store, func() time.Time { return now }).Load()
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true for expired token")
	}
	if store.erased != 1 {
		t.Errorf("erased %d times, want 1", store.erased)
	}
	if store.token != "" {
		t.Error("token still in store after invalid load")
	}
}

func TestLoadMalformedTokenErasesStore(t *testing.T) {
	store := &memStore{token: "definitely-not-a-jwt"}
	st := New(store).Load()
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true for malformed token")
	}
	if store.erased != 1 {
		t.Errorf("erased %d times, want 1", store.erased)
	}
}

func TestLoadStoreReadError(t *testing.T) {
	store := &memStore{readErr: errors.New("keyring locked")}
	st := New(store).Load()
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true when store is unreadable")
	}
}

func TestSaveAndClear(t *testing.T) {
	store := &memStore{}
	p := New(store)
	if err := p.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}
	if store.token != "tok" {
		t.Errorf("store token = %q, want %q", store.token, "tok")
	}
	if err := p.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if store.token != "" {
		t.Error("token survives Clear()")
	}
}
