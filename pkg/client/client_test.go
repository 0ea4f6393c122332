package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/futbolink/futbolink/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if creds.Email != "p@example.com" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	tok, err := c.Login(context.Background(), "p@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("token = %q, want %q", tok, "tok-123")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Login(context.Background(), "p@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("error = %q, want server message included", err)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Role != domain.RoleTeam {
			t.Errorf("role = %q, want TEAM", req.Role)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	tok, err := c.Register(context.Background(), RegisterRequest{
		Name: "FC Test", Email: "t@example.com", Password: "pw", Role: domain.RoleTeam,
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if tok != "fresh" {
		t.Errorf("token = %q, want %q", tok, "fresh")
	}
}

func TestListTeams_BearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		teams := []domain.Team{
			{ID: uuid.New(), Name: "FC Norte", Location: "Madrid", Category: "Primera"},
			{ID: uuid.New(), Name: "CD Sur", Location: "Sevilla", Category: "Segunda"},
		}
		json.NewEncoder(w).Encode(teams) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	teams, err := c.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams() error: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}
	if teams[0].Name != "FC Norte" {
		t.Errorf("teams[0].Name = %q, want %q", teams[0].Name, "FC Norte")
	}
}

func TestApply_PlainTextBody(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body) //nolint:errcheck
		gotBody = string(body)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.Apply(context.Background(), "team-1", "I would like to join"); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if gotBody != "I would like to join" {
		t.Errorf("body = %q, want the raw message", gotBody)
	}
	if gotType != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", gotType)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.UpdateApplicationStatus(context.Background(), "app-9", ActionAccept); err != nil {
		t.Fatalf("UpdateApplicationStatus() error: %v", err)
	}
	if gotPath != "/api/applications/app-9/accept" {
		t.Errorf("path = %q, want %q", gotPath, "/api/applications/app-9/accept")
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
}

func TestNotifications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success": true,
			"notifications": []domain.Notification{
				{ID: uuid.New(), Message: "Your application was accepted"},
				{ID: uuid.New(), Message: "New message from FC Norte"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	notifs, err := c.Notifications(context.Background())
	if err != nil {
		t.Fatalf("Notifications() error: %v", err)
	}
	if len(notifs) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifs))
	}
}

func TestNotifications_ServerReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if _, err := c.Notifications(context.Background()); err == nil {
		t.Fatal("expected error when success=false")
	}
}

func TestChatMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/app-42" {
			http.NotFound(w, r)
			return
		}
		msgs := []domain.ChatMessage{
			{ID: uuid.New(), Content: "hello", SenderRole: domain.RolePlayer, Timestamp: time.Now()},
			{ID: uuid.New(), Content: "hi there", SenderRole: domain.RoleTeam, Timestamp: time.Now()},
		}
		json.NewEncoder(w).Encode(msgs) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	msgs, err := c.ChatMessages(context.Background(), "app-42")
	if err != nil {
		t.Fatalf("ChatMessages() error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].SenderRole != domain.RoleTeam {
		t.Errorf("msgs[1].SenderRole = %q, want TEAM", msgs[1].SenderRole)
	}
}

func TestSendChatMessage(t *testing.T) {
	var gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		gotContent = body.Content
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.SendChatMessage(context.Background(), "app-42", "see you saturday"); err != nil {
		t.Fatalf("SendChatMessage() error: %v", err)
	}
	if gotContent != "see you saturday" {
		t.Errorf("content = %q, want %q", gotContent, "see you saturday")
	}
}

func TestApplicationStatus_ForbiddenAndNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/applications/status/locked":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if _, err := c.ApplicationStatus(context.Background(), "locked"); !IsForbidden(err) {
		t.Errorf("IsForbidden = false for 403, err = %v", err)
	}
	if _, err := c.ApplicationStatus(context.Background(), "other"); !IsNotFound(err) {
		t.Errorf("IsNotFound = false for 404, err = %v", err)
	}
}

func TestHTTPError_ServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second)              // slow server
		json.NewEncoder(w).Encode(domain.User{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.Me(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
