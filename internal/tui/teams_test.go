package tui

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

func testTeam(name, location, category string) domain.Team {
	return domain.Team{ID: uuid.New(), Name: name, Location: location, Category: category}
}

func TestTeamsFilterMatchesNameLocationCategory(t *testing.T) {
	m := newTeamsModel(client.New("http://localhost:1", ""), domain.RolePlayer)
	m.teams = []domain.Team{
		testTeam("Atlético Norte", "Madrid", "Senior"),
		testTeam("River Juniors", "Sevilla", "Juvenil"),
		testTeam("Sevilla East", "Sevilla", "Senior"),
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"", 3},
		{"sevilla", 2}, // one by name, one by location
		{"juvenil", 1},
		{"norte", 1},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		m.filter = tt.filter
		if got := len(m.visible()); got != tt.want {
			t.Errorf("visible() with filter %q = %d teams, want %d", tt.filter, got, tt.want)
		}
	}
}

func TestTeamStatus403And404AreDistinct(t *testing.T) {
	team := testTeam("FC Test", "Madrid", "Senior")

	cases := []struct {
		name string
		err  error
		want statusKind
		text string
	}{
		{"forbidden", &client.HTTPError{StatusCode: 403, Message: "forbidden"}, statusForbidden, "permission"},
		{"not applied", &client.HTTPError{StatusCode: 404, Message: "not found"}, statusNone, "not applied"},
		{"server error", &client.HTTPError{StatusCode: 500, Message: "boom"}, statusError, "could not load"},
	}
	for _, tc := range cases {
		m := newTeamsModel(client.New("http://localhost:1", "t"), domain.RolePlayer)
		m.state = teamsDetailState
		m.open = &team
		m.width = 80

		m, _ = m.Update(teamStatusLoadedMsg{teamID: team.ID.String(), err: tc.err})
		if m.status != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, m.status, tc.want)
		}
		if out := m.View(); !strings.Contains(out, tc.text) {
			t.Errorf("%s: View() missing %q", tc.name, tc.text)
		}
	}
}

func TestTeamStatusForWrongTeamDropped(t *testing.T) {
	team := testTeam("FC Test", "Madrid", "Senior")
	m := newTeamsModel(client.New("http://localhost:1", "t"), domain.RolePlayer)
	m.state = teamsDetailState
	m.open = &team

	app := &domain.Application{ID: uuid.New(), Status: domain.StatusPending}
	m, _ = m.Update(teamStatusLoadedMsg{teamID: uuid.NewString(), app: app})
	if m.status != statusUnknown {
		t.Error("status for a different team was applied")
	}
}

func TestApplyRequiresMessage(t *testing.T) {
	team := testTeam("FC Test", "Madrid", "Senior")
	m := newTeamsModel(client.New("http://localhost:1", "t"), domain.RolePlayer)
	m.state = teamsApplyState
	m.open = &team
	m.applyInput = "   "

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("apply fired with a blank message")
	}
	if m.state != teamsApplyState {
		t.Error("composer closed without sending")
	}
}

func TestApplyBlockedWhilePending(t *testing.T) {
	team := testTeam("FC Test", "Madrid", "Senior")
	m := newTeamsModel(client.New("http://localhost:1", "t"), domain.RolePlayer)
	m.state = teamsDetailState
	m.open = &team
	m.status = statusHave
	m.myApp = &domain.Application{ID: uuid.New(), Status: domain.StatusPending}

	m, _ = m.Update(keyMsg("a"))
	if m.state != teamsDetailState {
		t.Error("composer opened with an application still pending")
	}
	if m.notice == "" {
		t.Error("no explanation shown")
	}

	// A decided application does not block a new attempt.
	m.myApp.Status = domain.StatusRejected
	m.notice = ""
	m, _ = m.Update(keyMsg("a"))
	if m.state != teamsApplyState {
		t.Error("composer did not open after a final decision")
	}
}

func TestOnlyPlayersCanApply(t *testing.T) {
	team := testTeam("FC Test", "Madrid", "Senior")
	m := newTeamsModel(client.New("http://localhost:1", "t"), domain.RoleTeam)
	m.state = teamsDetailState
	m.open = &team

	m, _ = m.Update(keyMsg("a"))
	if m.state != teamsDetailState {
		t.Error("composer opened for a TEAM session")
	}
	if m.notice == "" {
		t.Error("no explanation shown")
	}
}
