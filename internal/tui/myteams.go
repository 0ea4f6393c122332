package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

type myTeamsLoadedMsg struct {
	teams []domain.Team
	err   error
}

type teamDeletedMsg struct {
	id  string
	err error
}

type myTeamsModel struct {
	client     *client.Client
	teams      []domain.Team
	cursor     int
	confirming bool // delete confirmation pending
	loading    bool
	err        string
	notice     string
	width      int
	height     int
}

func newMyTeamsModel(c *client.Client) myTeamsModel {
	return myTeamsModel{client: c, loading: true}
}

func (m myTeamsModel) Init() tea.Cmd {
	return m.load()
}

func (m myTeamsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		teams, err := c.MyTeams(context.Background())
		return myTeamsLoadedMsg{teams: teams, err: err}
	}
}

func (m myTeamsModel) deleteTeam(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return teamDeletedMsg{id: id, err: c.DeleteTeam(context.Background(), id)}
	}
}

func (m myTeamsModel) Update(msg tea.Msg) (myTeamsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case myTeamsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.teams = msg.teams
			m.err = ""
		}
		if m.cursor >= len(m.teams) {
			m.cursor = max(len(m.teams)-1, 0)
		}

	case teamDeletedMsg:
		if msg.err != nil {
			m.notice = "delete failed: " + msg.err.Error()
			return m, nil
		}
		// Remove locally on success, no refetch.
		for i, t := range m.teams {
			if t.ID.String() == msg.id {
				m.teams = append(m.teams[:i], m.teams[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.teams) {
			m.cursor = max(len(m.teams)-1, 0)
		}
		m.notice = "team deleted"

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y":
				m.confirming = false
				if len(m.teams) > 0 && m.cursor < len(m.teams) {
					return m, m.deleteTeam(m.teams[m.cursor].ID.String())
				}
			default:
				m.confirming = false
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.teams)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "n":
			return m, func() tea.Msg { return navigateMsg{target: viewTeamForm} }
		case "e":
			if len(m.teams) > 0 && m.cursor < len(m.teams) {
				t := m.teams[m.cursor]
				return m, func() tea.Msg { return editTeamMsg{team: t} }
			}
		case "d":
			if len(m.teams) > 0 && m.cursor < len(m.teams) {
				m.confirming = true
				m.notice = ""
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m myTeamsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("My teams") + "\n")
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
	if len(m.teams) == 0 {
		b.WriteString("\n " + dimStyle.Render("no teams yet · press n to create one") + "\n")
		return b.String()
	}

	for i, t := range m.teams {
		cursor := "  "
		name := normalStyle.Render(t.Name)
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			name = selectedStyle.Render(t.Name)
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n", cursor, name,
			dimStyle.Render(t.Location), metaStyle.Render(t.Category))
	}

	if m.confirming && m.cursor < len(m.teams) {
		b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("delete %q? press y to confirm", m.teams[m.cursor].Name)) + "\n")
	} else if m.notice != "" {
		b.WriteString("\n " + dimStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m myTeamsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "refresh")
}
