package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/futbolink/futbolink/pkg/domain"
)

// Client is the FutboLink API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. An empty token produces unauthenticated
// requests; public endpoints still work.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Auth ---

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return resp.AccessToken, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return "", fmt.Errorf("client.Register: %w", err)
	}
	return resp.AccessToken, nil
}

// --- Account ---

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/users/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// UpdateMe updates the authenticated account's name and email.
func (c *Client) UpdateMe(ctx context.Context, name, email string) error {
	body := map[string]string{"name": name, "email": email}
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/me", body, nil); err != nil {
		return fmt.Errorf("client.UpdateMe: %w", err)
	}
	return nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/change-password", body, nil); err != nil {
		return fmt.Errorf("client.ChangePassword: %w", err)
	}
	return nil
}

// DeleteAccount permanently removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/users/delete", nil, nil); err != nil {
		return fmt.Errorf("client.DeleteAccount: %w", err)
	}
	return nil
}

// --- Teams ---

// TeamRequest is the payload for creating or updating a team.
type TeamRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// ListTeams fetches all teams. Public endpoint.
func (c *Client) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.get(ctx, "/api/teams", &teams); err != nil {
		return nil, fmt.Errorf("client.ListTeams: %w", err)
	}
	return teams, nil
}

// GetTeam fetches a single team by ID. Public endpoint.
func (c *Client) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	if err := c.get(ctx, "/api/teams/"+url.PathEscape(id), &team); err != nil {
		return nil, fmt.Errorf("client.GetTeam: %w", err)
	}
	return &team, nil
}

// MyTeams returns the teams owned by the authenticated TEAM account.
func (c *Client) MyTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.get(ctx, "/api/teams/my-teams", &teams); err != nil {
		return nil, fmt.Errorf("client.MyTeams: %w", err)
	}
	return teams, nil
}

// CreateTeam creates a new team.
func (c *Client) CreateTeam(ctx context.Context, req TeamRequest) (*domain.Team, error) {
	var created domain.Team
	if err := c.post(ctx, "/api/teams", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTeam: %w", err)
	}
	return &created, nil
}

// UpdateTeam updates a team by ID.
func (c *Client) UpdateTeam(ctx context.Context, id string, req TeamRequest) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/teams/"+url.PathEscape(id), req, nil); err != nil {
		return fmt.Errorf("client.UpdateTeam: %w", err)
	}
	return nil
}

// DeleteTeam deletes a team by ID.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/teams/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteTeam: %w", err)
	}
	return nil
}

// --- Applications ---

// ApplicationAction is a status transition requested by the team side.
type ApplicationAction string

const (
	ActionAccept ApplicationAction = "accept"
	ActionReject ApplicationAction = "reject"
)

// Apply submits a join application to a team. The message travels as plain
// text, matching the server's contract.
func (c *Client) Apply(ctx context.Context, teamID, message string) error {
	if err := c.doText(ctx, http.MethodPost, "/api/applications/apply/"+url.PathEscape(teamID), message); err != nil {
		return fmt.Errorf("client.Apply: %w", err)
	}
	return nil
}

// TeamApplications returns applications received by the authenticated team.
func (c *Client) TeamApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.get(ctx, "/api/applications/team", &apps); err != nil {
		return nil, fmt.Errorf("client.TeamApplications: %w", err)
	}
	return apps, nil
}

// PlayerApplications returns applications submitted by the authenticated player.
func (c *Client) PlayerApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.get(ctx, "/api/applications/player", &apps); err != nil {
		return nil, fmt.Errorf("client.PlayerApplications: %w", err)
	}
	return apps, nil
}

// ApplicationStatus returns the authenticated player's application to the
// given team. 404 means no application exists, 403 means the caller may not
// see it; both reach the view as HTTPError so it can tell them apart.
func (c *Client) ApplicationStatus(ctx context.Context, teamID string) (*domain.Application, error) {
	var app domain.Application
	if err := c.get(ctx, "/api/applications/status/"+url.PathEscape(teamID), &app); err != nil {
		return nil, fmt.Errorf("client.ApplicationStatus: %w", err)
	}
	return &app, nil
}

// UpdateApplicationStatus accepts or rejects an application.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, action ApplicationAction) error {
	path := "/api/applications/" + url.PathEscape(id) + "/" + url.PathEscape(string(action))
	if err := c.doRequest(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("client.UpdateApplicationStatus: %w", err)
	}
	return nil
}

// --- Players ---

// PlayerProfileRequest is the payload for creating or updating a profile.
type PlayerProfileRequest struct {
	Age         int    `json:"age"`
	Position    string `json:"position"`
	Skills      string `json:"skills"`
	Experience  int    `json:"experience"`
	Description string `json:"description,omitempty"`
}

// GetPlayer fetches a player profile by ID (team side, via an application).
func (c *Client) GetPlayer(ctx context.Context, id string) (*domain.PlayerProfile, error) {
	var p domain.PlayerProfile
	if err := c.get(ctx, "/api/player/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("client.GetPlayer: %w", err)
	}
	return &p, nil
}

// MyPlayerProfile returns the authenticated player's own profile.
func (c *Client) MyPlayerProfile(ctx context.Context) (*domain.PlayerProfile, error) {
	var p domain.PlayerProfile
	if err := c.get(ctx, "/api/player/profile", &p); err != nil {
		return nil, fmt.Errorf("client.MyPlayerProfile: %w", err)
	}
	return &p, nil
}

// SavePlayerProfile creates or replaces the authenticated player's profile.
func (c *Client) SavePlayerProfile(ctx context.Context, req PlayerProfileRequest) (*domain.PlayerProfile, error) {
	var p domain.PlayerProfile
	if err := c.post(ctx, "/api/player/profile", req, &p); err != nil {
		return nil, fmt.Errorf("client.SavePlayerProfile: %w", err)
	}
	return &p, nil
}

// --- Notifications ---

// notificationsEnvelope is the shape of the notifications endpoint response.
type notificationsEnvelope struct {
	Success       bool                  `json:"success"`
	Notifications []domain.Notification `json:"notifications"`
}

// Notifications returns the pending notifications for the bearer's identity.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var env notificationsEnvelope
	if err := c.get(ctx, "/api/notifications", &env); err != nil {
		return nil, fmt.Errorf("client.Notifications: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("client.Notifications: server reported failure")
	}
	return env.Notifications, nil
}

// MarkNotificationsRead marks every pending notification as read.
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	if err := c.post(ctx, "/api/notifications/mark-as-read", struct{}{}, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationsRead: %w", err)
	}
	return nil
}

// --- Chat ---

// ListChats returns the caller's conversations, one per application.
func (c *Client) ListChats(ctx context.Context) ([]domain.ChatSummary, error) {
	var chats []domain.ChatSummary
	if err := c.get(ctx, "/api/chat", &chats); err != nil {
		return nil, fmt.Errorf("client.ListChats: %w", err)
	}
	return chats, nil
}

// ChatMessages returns the full ordered message history of one conversation.
func (c *Client) ChatMessages(ctx context.Context, applicationID string) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	if err := c.get(ctx, "/api/chat/"+url.PathEscape(applicationID), &msgs); err != nil {
		return nil, fmt.Errorf("client.ChatMessages: %w", err)
	}
	return msgs, nil
}

// SendChatMessage posts a message to a conversation.
func (c *Client) SendChatMessage(ctx context.Context, applicationID, content string) error {
	body := map[string]string{"content": content}
	if err := c.post(ctx, "/api/chat/"+url.PathEscape(applicationID), body, nil); err != nil {
		return fmt.Errorf("client.SendChatMessage: %w", err)
	}
	return nil
}

// --- plumbing ---

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// doText issues a request with a text/plain body. The apply endpoint takes
// the application message this way.
func (c *Client) doText(ctx context.Context, method, path, body string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
