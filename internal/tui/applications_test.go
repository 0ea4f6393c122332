package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

func testApp(player string, status domain.ApplicationStatus) domain.Application {
	return domain.Application{
		ID:         uuid.New(),
		Status:     status,
		PlayerName: player,
		Message:    "let me join",
		CreatedAt:  time.Now(),
	}
}

func loadedAppsModel(apps ...domain.Application) applicationsModel {
	m := newApplicationsModel(client.New("http://localhost:1", "t"))
	m, _ = m.Update(appsLoadedMsg{apps: apps})
	return m
}

func TestAcceptFlipsStatusOptimistically(t *testing.T) {
	m := loadedAppsModel(testApp("ana", domain.StatusPending))

	m, cmd := m.Update(keyMsg("a"))
	if m.apps[0].Status != domain.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED before the request resolves", m.apps[0].Status)
	}
	if cmd == nil {
		t.Error("accept did not issue a request")
	}
}

func TestRejectFlipsStatusOptimistically(t *testing.T) {
	m := loadedAppsModel(testApp("ana", domain.StatusPending))

	m, cmd := m.Update(keyMsg("x"))
	if m.apps[0].Status != domain.StatusRejected {
		t.Errorf("status = %s, want REJECTED", m.apps[0].Status)
	}
	if cmd == nil {
		t.Error("reject did not issue a request")
	}
}

func TestActionFailureDoesNotRollBack(t *testing.T) {
	m := loadedAppsModel(testApp("ana", domain.StatusPending))
	m, _ = m.Update(keyMsg("a"))

	m, _ = m.Update(appActionResultMsg{id: m.apps[0].ID.String(), err: errors.New("500")})
	if m.apps[0].Status != domain.StatusAccepted {
		t.Errorf("status rolled back to %s after failure", m.apps[0].Status)
	}
	if m.notice == "" {
		t.Error("failure not surfaced")
	}
}

func TestFinalStatusCannotBeDecidedAgain(t *testing.T) {
	m := loadedAppsModel(testApp("ana", domain.StatusAccepted))

	m, cmd := m.Update(keyMsg("x"))
	if m.apps[0].Status != domain.StatusAccepted {
		t.Errorf("final status changed to %s", m.apps[0].Status)
	}
	if cmd != nil {
		t.Error("request fired for an already-decided application")
	}
}

func TestEnterOpensChatOnlyWhenAccepted(t *testing.T) {
	m := loadedAppsModel(testApp("ana", domain.StatusPending))

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("chat opened for a pending application")
	}

	m.apps[0].Status = domain.StatusAccepted
	m, cmd = m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("chat did not open for an accepted application")
	}
	msg, ok := cmd().(openChatMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want openChatMsg", cmd())
	}
	if msg.applicationID != m.apps[0].ID.String() {
		t.Errorf("openChatMsg id = %s, want %s", msg.applicationID, m.apps[0].ID)
	}
}

func TestApplicationsViewShowsStatuses(t *testing.T) {
	m := loadedAppsModel(
		testApp("ana", domain.StatusPending),
		testApp("bruno", domain.StatusRejected),
	)
	m.width = 100

	out := m.View()
	for _, want := range []string{"ana", "bruno", "PENDING", "REJECTED"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
