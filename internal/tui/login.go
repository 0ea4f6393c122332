package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
)

// authResultMsg carries the outcome of a login or register call. The app
// consumes the success case (token persistence and session rebuild); the
// form models consume the failure case.
type authResultMsg struct {
	token string
	err   error
}

type loginModel struct {
	client     *client.Client
	inputs     []textinput.Model // email, password
	focus      int
	submitting bool
	err        string
	width      int
	height     int
}

func newLoginModel(c *client.Client) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return loginModel{client: c, inputs: []textinput.Model{email, password}}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) editing() bool {
	return true // the form always owns the keyboard
}

func (m loginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	c := m.client
	return func() tea.Msg {
		token, err := c.Login(context.Background(), email, password)
		return authResultMsg{token: token, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				m.err = "invalid email or password"
			} else {
				m.err = msg.err.Error()
			}
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
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.focus++
				return m.refocus()
			}
			if m.submitting {
				return m, nil
			}
			if strings.TrimSpace(m.inputs[0].Value()) == "" || m.inputs[1].Value() == "" {
				m.err = "email and password are required"
				return m, nil
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

func (m loginModel) refocus() (loginModel, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Sign in") + "\n\n")
	for i := range m.inputs {
		b.WriteString(" " + m.inputs[i].View() + "\n")
	}
	b.WriteByte('\n')
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.err != "":
		b.WriteString(" " + errStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("no account yet? press ctrl+r to register") + "\n")
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+r", "register")
}
