package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

type registerModel struct {
	client     *client.Client
	inputs     []textinput.Model // name, email, password
	focus      int
	role       domain.Role
	submitting bool
	err        string
	width      int
	height     int
}

func newRegisterModel(c *client.Client) registerModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.Prompt = "  "
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return registerModel{
		client: c,
		inputs: []textinput.Model{name, email, password},
		role:   domain.RolePlayer,
	}
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) editing() bool {
	return true
}

func (m registerModel) submit() tea.Cmd {
	req := client.RegisterRequest{
		Name:     strings.TrimSpace(m.inputs[0].Value()),
		Email:    strings.TrimSpace(m.inputs[1].Value()),
		Password: m.inputs[2].Value(),
		Role:     m.role,
	}
	c := m.client
	return func() tea.Msg {
		token, err := c.Register(context.Background(), req)
		return authResultMsg{token: token, err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % len(m.inputs)
			return m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			return m.refocus()
		case "ctrl+t":
			if m.role == domain.RolePlayer {
				m.role = domain.RoleTeam
			} else {
				m.role = domain.RolePlayer
			}
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.focus++
				return m.refocus()
			}
			if m.submitting {
				return m, nil
			}
			for i, label := range []string{"name", "email", "password"} {
				if strings.TrimSpace(m.inputs[i].Value()) == "" {
					m.err = label + " is required"
					return m, nil
				}
			}
			m.err = ""
			m.submitting = true
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) refocus() (registerModel, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Create account") + "\n\n")
	for i := range m.inputs {
		b.WriteString(" " + m.inputs[i].View() + "\n")
	}

	player := dimStyle.Render("PLAYER")
	team := dimStyle.Render("TEAM")
	if m.role == domain.RolePlayer {
		player = RoleStyle(domain.RolePlayer).Render("PLAYER")
	} else {
		team = RoleStyle(domain.RoleTeam).Render("TEAM")
	}
	b.WriteString("\n  " + metaStyle.Render("join as") + " " + player + " " + chatSepStyle.Render("/") + " " + team + "\n\n")

	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	case m.err != "":
		b.WriteString(" " + errStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("already registered? press ctrl+r to sign in") + "\n")
	return b.String()
}

func (m registerModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+t", "role") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+r", "sign in")
}
