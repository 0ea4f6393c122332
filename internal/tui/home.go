package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

type homeLoadedMsg struct {
	me  *domain.User
	err error
}

type homeModel struct {
	client  *client.Client
	me      *domain.User
	loading bool
	err     string
	width   int
	height  int
}

func newHomeModel(c *client.Client) homeModel {
	return homeModel{client: c, loading: true}
}

func (m homeModel) Init() tea.Cmd {
	return m.loadMe()
}

func (m homeModel) loadMe() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return homeLoadedMsg{me: me, err: err}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case homeLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.me = msg.me
			m.err = ""
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadMe()
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Home") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case m.err != "":
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
	case m.me != nil:
		b.WriteString(" " + selectedStyle.Render(m.me.Name) + "  " + RoleStyle(m.me.Role).Render(string(m.me.Role)) + "\n")
		b.WriteString(" " + dimStyle.Render(m.me.Email) + "\n\n")
		if m.me.Role == domain.RoleTeam {
			b.WriteString(" " + normalStyle.Render("Manage your teams, review applications and chat with players.") + "\n")
		} else {
			b.WriteString(" " + normalStyle.Render("Browse teams, send applications and chat with clubs.") + "\n")
		}
	}
	return b.String()
}

func (m homeModel) helpKeys() string {
	return helpEntry("r", "refresh")
}
