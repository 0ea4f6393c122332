package tui

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/futbolink/futbolink/internal/auth"
	"github.com/futbolink/futbolink/internal/config"
	"github.com/futbolink/futbolink/pkg/domain"
)

type memStore struct {
	token string
}

func (s *memStore) Read() (string, error) { return s.token, nil }
func (s *memStore) Write(t string) error  { s.token = t; return nil }
func (s *memStore) Erase() error          { s.token = ""; return nil }

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:          "http://localhost:1",
		NotificationPollSec: 30,
		ChatPollSec:         10,
	}
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"authorities": []string{"ROLE_" + role},
		"userId":      "u-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAppShowsLoadingThenLogin(t *testing.T) {
	a := NewApp(auth.New(&memStore{}), testConfig(), nil)
	if a.view != viewLoading {
		t.Fatalf("initial view = %d, want loading placeholder", a.view)
	}

	model, _ := a.Update(authLoadedMsg{state: auth.State{}})
	a = model.(App)
	if a.view != viewLogin {
		t.Errorf("view after settling logged out = %d, want login", a.view)
	}
}

func TestAppLoginRebuildsSession(t *testing.T) {
	store := &memStore{}
	a := NewApp(auth.New(store), testConfig(), nil)
	model, _ := a.Update(authLoadedMsg{state: auth.State{}})
	a = model.(App)

	model, cmd := a.Update(authResultMsg{token: signTestToken(t, "PLAYER")})
	a = model.(App)

	if store.token == "" {
		t.Error("token not persisted on login")
	}
	if a.view != viewHome {
		t.Errorf("view = %d, want home after login", a.view)
	}
	if !a.state.IsAuthenticated || a.state.Role != domain.RolePlayer {
		t.Errorf("state = %+v, want authenticated PLAYER", a.state)
	}
	if !a.notifications.active {
		t.Error("notification poller not started with the session")
	}
	if cmd == nil {
		t.Error("no commands issued on session rebuild")
	}
}

func TestAppLogoutTearsDown(t *testing.T) {
	store := &memStore{token: signTestToken(t, "TEAM")}
	a := NewApp(auth.New(store), testConfig(), nil)
	model, _ := a.Update(authLoadedMsg{state: auth.New(store).Load()})
	a = model.(App)
	if a.view != viewHome {
		t.Fatalf("precondition: view = %d, want home", a.view)
	}
	gen := a.notifications.gen

	model, _ = a.Update(logoutMsg{})
	a = model.(App)

	if store.token != "" {
		t.Error("token survived logout")
	}
	if a.view != viewLogin {
		t.Errorf("view = %d, want login after logout", a.view)
	}
	if a.notifications.active {
		t.Error("notification poller still active after logout")
	}
	if a.notifications.gen == gen {
		t.Error("logout did not invalidate the poll generation")
	}
}

func TestAppRoleTabs(t *testing.T) {
	a := NewApp(auth.New(&memStore{}), testConfig(), nil)

	a.state = auth.State{IsAuthenticated: true, Role: domain.RoleTeam}
	for _, tab := range a.tabs() {
		if tab.target == viewProfile {
			t.Error("TEAM tab bar offers the player profile view")
		}
	}

	a.state = auth.State{IsAuthenticated: true, Role: domain.RolePlayer}
	for _, tab := range a.tabs() {
		if tab.target == viewApplications || tab.target == viewMyTeams {
			t.Error("PLAYER tab bar offers team-only views")
		}
	}
}
