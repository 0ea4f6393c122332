package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// The player-side view of their own applications.

type playerAppsLoadedMsg struct {
	apps []domain.Application
	err  error
}

type playerAppsModel struct {
	client  *client.Client
	apps    []domain.Application
	cursor  int
	loading bool
	err     string
	notice  string
	width   int
	height  int
}

func newPlayerAppsModel(c *client.Client) playerAppsModel {
	return playerAppsModel{client: c, loading: true}
}

func (m playerAppsModel) Init() tea.Cmd {
	return m.load()
}

func (m playerAppsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.PlayerApplications(context.Background())
		return playerAppsLoadedMsg{apps: apps, err: err}
	}
}

func (m playerAppsModel) Update(msg tea.Msg) (playerAppsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case playerAppsLoadedMsg:
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
		case "enter":
			if len(m.apps) > 0 && m.cursor < len(m.apps) {
				app := m.apps[m.cursor]
				if app.Status == domain.StatusAccepted {
					return m, func() tea.Msg {
						return openChatMsg{applicationID: app.ID.String(), title: app.TeamName}
					}
				}
				m.notice = "chat opens once the team accepts"
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m playerAppsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("My applications") + "\n")
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
		b.WriteString("\n " + dimStyle.Render("no applications yet · find a team in the Teams tab") + "\n")
		return b.String()
	}

	for i, app := range m.apps {
		cursor := "  "
		name := normalStyle.Render(app.TeamName)
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			name = selectedStyle.Render(app.TeamName)
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n", cursor, name,
			StatusStyle(app.Status).Render(string(app.Status)),
			metaStyle.Render(formatTime(app.CreatedAt)))
	}

	if m.notice != "" {
		b.WriteString("\n " + dimStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m playerAppsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "chat") + "  " + helpEntry("r", "refresh")
}
