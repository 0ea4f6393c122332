package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/futbolink/futbolink/internal/browser"
	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

type teamsState int

const (
	teamsListState   teamsState = iota
	teamsDetailState            // one team opened
	teamsApplyState             // composing an application message
)

type teamsLoadedMsg struct {
	teams []domain.Team
	err   error
}

// teamStatusLoadedMsg carries the viewer's application status for one team.
type teamStatusLoadedMsg struct {
	teamID string
	app    *domain.Application
	err    error
}

type applyResultMsg struct {
	teamID string
	err    error
}

// statusKind is the rendered flavor of the application-status pane. A 403
// and a 404 mean different things to the viewer and must not collapse into
// one generic error.
type statusKind int

const (
	statusUnknown   statusKind = iota
	statusHave                 // an application exists
	statusNone                 // 404: not applied yet
	statusForbidden            // 403: not allowed to see it
	statusError
)

type teamsModel struct {
	client *client.Client
	role   domain.Role // empty when browsing without a session
	state  teamsState

	teams     []domain.Team
	cursor    int
	filter    string
	filtering bool
	loading   bool
	err       string
	width     int
	height    int

	// detail state
	open       *domain.Team
	statusOf   string // team id the status below belongs to
	status     statusKind
	myApp      *domain.Application
	applyInput string
	notice     string
}

func newTeamsModel(c *client.Client, role domain.Role) teamsModel {
	return teamsModel{client: c, role: role, loading: true}
}

func (m teamsModel) Init() tea.Cmd {
	return m.loadTeams()
}

func (m teamsModel) editing() bool {
	return m.filtering || m.state == teamsApplyState
}

func (m teamsModel) loadTeams() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		teams, err := c.ListTeams(context.Background())
		return teamsLoadedMsg{teams: teams, err: err}
	}
}

func (m teamsModel) loadStatus() tea.Cmd {
	c := m.client
	teamID := m.open.ID.String()
	return func() tea.Msg {
		app, err := c.ApplicationStatus(context.Background(), teamID)
		return teamStatusLoadedMsg{teamID: teamID, app: app, err: err}
	}
}

func (m teamsModel) apply(message string) tea.Cmd {
	c := m.client
	teamID := m.open.ID.String()
	return func() tea.Msg {
		return applyResultMsg{teamID: teamID, err: c.Apply(context.Background(), teamID, message)}
	}
}

// visible returns the teams passing the current filter. Matching is a
// case-insensitive substring check over name, location and category.
func (m teamsModel) visible() []domain.Team {
	if strings.TrimSpace(m.filter) == "" {
		return m.teams
	}
	q := strings.ToLower(strings.TrimSpace(m.filter))
	var out []domain.Team
	for _, t := range m.teams {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Location), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

func (m teamsModel) Update(msg tea.Msg) (teamsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case teamsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.teams = msg.teams
			m.err = ""
		}
		if m.cursor >= len(m.visible()) {
			m.cursor = max(len(m.visible())-1, 0)
		}

	case teamStatusLoadedMsg:
		if m.open == nil || msg.teamID != m.open.ID.String() {
			return m, nil
		}
		m.statusOf = msg.teamID
		switch {
		case msg.err == nil:
			m.status = statusHave
			m.myApp = msg.app
		case client.IsNotFound(msg.err):
			m.status = statusNone
		case client.IsForbidden(msg.err):
			m.status = statusForbidden
		default:
			m.status = statusError
		}

	case applyResultMsg:
		if m.open == nil || msg.teamID != m.open.ID.String() {
			return m, nil
		}
		if msg.err != nil {
			m.notice = "apply failed: " + msg.err.Error()
		} else {
			m.notice = "application sent"
			m.status = statusUnknown
			return m, m.loadStatus()
		}

	case tea.KeyMsg:
		switch m.state {
		case teamsListState:
			return m.updateList(msg)
		case teamsDetailState:
			return m.updateDetail(msg)
		case teamsApplyState:
			return m.updateApply(msg)
		}
	}
	return m, nil
}

func (m teamsModel) updateList(msg tea.KeyMsg) (teamsModel, tea.Cmd) {
	key := msg.String()

	if m.filtering {
		switch key {
		case "enter", "esc":
			m.filtering = false
			if key == "esc" {
				m.filter = ""
			}
			m.cursor = 0
		default:
			m.filter = editRune(m.filter, key, 60)
			m.cursor = 0
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.filtering = true
	case "enter":
		vis := m.visible()
		if len(vis) > 0 && m.cursor < len(vis) {
			t := vis[m.cursor]
			m.state = teamsDetailState
			m.open = &t
			m.status = statusUnknown
			m.myApp = nil
			m.notice = ""
			if m.role == domain.RolePlayer {
				return m, m.loadStatus()
			}
		}
	case "r":
		m.loading = true
		return m, m.loadTeams()
	}
	return m, nil
}

func (m teamsModel) updateDetail(msg tea.KeyMsg) (teamsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = teamsListState
		m.open = nil
		m.notice = ""
	case "a":
		if m.role != domain.RolePlayer {
			m.notice = "only players can apply"
			return m, nil
		}
		if m.status == statusHave && m.myApp != nil && !m.myApp.Status.Final() {
			m.notice = "application already pending"
			return m, nil
		}
		m.state = teamsApplyState
		m.applyInput = ""
		m.notice = ""
	case "c":
		if m.open != nil {
			line := fmt.Sprintf("%s · %s · %s", m.open.Name, m.open.Location, m.open.ID)
			if err := clipboard.WriteAll(line); err != nil {
				m.notice = "copy failed"
			} else {
				m.notice = "team info copied"
			}
		}
	case "o":
		if m.open != nil && m.open.LogoPath != "" {
			target := m.open.LogoPath
			if strings.HasPrefix(target, "/") {
				target = m.client.BaseURL() + target
			}
			browser.Open(target) //nolint:errcheck // best-effort browser open
		}
	}
	return m, nil
}

func (m teamsModel) updateApply(msg tea.KeyMsg) (teamsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = teamsDetailState
		m.applyInput = ""
	case "enter":
		message := strings.TrimSpace(m.applyInput)
		if message == "" {
			return m, nil
		}
		m.state = teamsDetailState
		m.applyInput = ""
		m.notice = "sending application..."
		return m, m.apply(message)
	default:
		m.applyInput = editRune(m.applyInput, msg.String(), domain.MaxMessageLen)
	}
	return m, nil
}

func (m teamsModel) View() string {
	switch m.state {
	case teamsDetailState:
		return m.viewDetail(false)
	case teamsApplyState:
		return m.viewDetail(true)
	default:
		return m.viewList()
	}
}

func (m teamsModel) viewList() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Teams") + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	if m.filtering || m.filter != "" {
		prompt := accentStyle.Render("/") + normalStyle.Render(m.filter)
		if m.filtering {
			prompt += accentStyle.Render("█")
		}
		b.WriteString(" " + prompt + "\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString("\n " + dimStyle.Render("no teams found") + "\n")
		return b.String()
	}

	for i, t := range vis {
		cursor := "  "
		name := normalStyle.Render(t.Name)
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			name = selectedStyle.Render(t.Name)
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n", cursor, name,
			dimStyle.Render(t.Location), metaStyle.Render(t.Category))
	}
	return b.String()
}

func (m teamsModel) viewDetail(composing bool) string {
	var b strings.Builder
	if m.open == nil {
		return "\n " + dimStyle.Render("no team selected") + "\n"
	}
	t := m.open

	b.WriteString("\n " + selectedStyle.Render(t.Name) + "  " + metaStyle.Render(t.Category) + "\n")
	b.WriteString(" " + dimStyle.Render(t.Location) + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	if t.Description != "" {
		desc := lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(t.Description)
		for _, line := range strings.Split(desc, "\n") {
			b.WriteString(" " + normalStyle.Render(line) + "\n")
		}
	}

	if m.role == domain.RolePlayer {
		b.WriteByte('\n')
		switch m.status {
		case statusHave:
			if m.myApp != nil {
				b.WriteString(" " + metaStyle.Render("your application: ") +
					StatusStyle(m.myApp.Status).Render(string(m.myApp.Status)) + "\n")
			}
		case statusNone:
			b.WriteString(" " + dimStyle.Render("you have not applied to this team yet") + "\n")
		case statusForbidden:
			b.WriteString(" " + warnStyle.Render("you do not have permission to view your application here") + "\n")
		case statusError:
			b.WriteString(" " + errStyle.Render("could not load application status") + "\n")
		default:
			b.WriteString(" " + dimStyle.Render("checking application status...") + "\n")
		}
	}

	if composing {
		b.WriteByte('\n')
		b.WriteString(" " + metaStyle.Render("message to the team:") + "\n")
		input := m.applyInput
		if input == "" {
			b.WriteString(" " + inputPlaceholderStyle.Render("why do you want to join?") + accentStyle.Render("█") + "\n")
		} else {
			b.WriteString(" " + chatSelfTextStyle.Render(input) + accentStyle.Render("█") + "\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n " + dimStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m teamsModel) helpKeys() string {
	switch m.state {
	case teamsApplyState:
		return helpEntry("enter", "send") + "  " + helpEntry("esc", "cancel")
	case teamsDetailState:
		keys := helpEntry("c", "copy") + "  " + helpEntry("o", "logo") + "  " + helpEntry("esc", "back")
		if m.role == domain.RolePlayer {
			keys = helpEntry("a", "apply") + "  " + keys
		}
		return keys
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("/", "filter") + "  " + helpEntry("enter", "open") + "  " + helpEntry("r", "refresh")
	}
}
