package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// The team-side application inbox. Accepting or rejecting flips the local
// status immediately and fires the request in the background; a failure is
// reported but the flip is not rolled back and the list is not refetched.

type appsLoadedMsg struct {
	apps []domain.Application
	err  error
}

type appActionResultMsg struct {
	id  string
	err error
}

type applicationsModel struct {
	client  *client.Client
	apps    []domain.Application
	cursor  int
	loading bool
	err     string
	notice  string
	width   int
	height  int
}

func newApplicationsModel(c *client.Client) applicationsModel {
	return applicationsModel{client: c, loading: true}
}

func (m applicationsModel) Init() tea.Cmd {
	return m.load()
}

func (m applicationsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.TeamApplications(context.Background())
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (m applicationsModel) act(id string, action client.ApplicationAction) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return appActionResultMsg{id: id, err: c.UpdateApplicationStatus(context.Background(), id, action)}
	}
}

func (m applicationsModel) Update(msg tea.Msg) (applicationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case appsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.apps = msg.apps
			m.err = ""
		}
		if m.cursor >= len(m.apps) {
			m.cursor = max(len(m.apps)-1, 0)
		}

	case appActionResultMsg:
		if msg.err != nil {
			m.notice = "update failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.apps)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "a":
			return m.decide(client.ActionAccept, domain.StatusAccepted)
		case "x":
			return m.decide(client.ActionReject, domain.StatusRejected)
		case "enter":
			if len(m.apps) > 0 && m.cursor < len(m.apps) {
				app := m.apps[m.cursor]
				if app.Status == domain.StatusAccepted {
					return m, func() tea.Msg {
						return openChatMsg{applicationID: app.ID.String(), title: app.PlayerName}
					}
				}
				m.notice = "chat opens once the application is accepted"
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m applicationsModel) decide(action client.ApplicationAction, status domain.ApplicationStatus) (applicationsModel, tea.Cmd) {
	if len(m.apps) == 0 || m.cursor >= len(m.apps) {
		return m, nil
	}
	app := m.apps[m.cursor]
	if app.Status.Final() {
		m.notice = "application already " + strings.ToLower(string(app.Status))
		return m, nil
	}
	m.apps[m.cursor].Status = status
	m.notice = ""
	return m, m.act(app.ID.String(), action)
}

func (m applicationsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Applications") + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if len(m.apps) == 0 {
		b.WriteString("\n " + dimStyle.Render("no applications yet") + "\n")
		return b.String()
	}

	for i, app := range m.apps {
		cursor := "  "
		name := normalStyle.Render(app.PlayerName)
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			name = selectedStyle.Render(app.PlayerName)
		}
		message := truncStr(app.Message, max(m.width-40, 20))
		fmt.Fprintf(&b, " %s%s  %s  %s  %s\n", cursor, name,
			StatusStyle(app.Status).Render(string(app.Status)),
			dimStyle.Render(message),
			metaStyle.Render(formatTime(app.CreatedAt)))
	}

	if m.notice != "" {
		b.WriteString("\n " + dimStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m applicationsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "accept") + "  " + helpEntry("x", "reject") + "  " + helpEntry("enter", "chat") + "  " + helpEntry("r", "refresh")
}
