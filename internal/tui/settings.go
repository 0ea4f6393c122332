package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
)

// logoutMsg asks the app to drop the stored token and rebuild logged out.
type logoutMsg struct{}

type settingsState int

const (
	settingsMenuState settingsState = iota
	settingsProfileState
	settingsPasswordState
	settingsDeleteState
)

type settingsMeLoadedMsg struct {
	name  string
	email string
	err   error
}

type settingsSavedMsg struct {
	err error
}

type passwordChangedMsg struct {
	err error
}

type accountDeletedMsg struct {
	err error
}

type settingsModel struct {
	client     *client.Client
	state      settingsState
	name       string
	email      string
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        string
	notice     string
	width      int
	height     int
}

func newSettingsModel(c *client.Client) settingsModel {
	return settingsModel{client: c}
}

func (m settingsModel) Init() tea.Cmd {
	return m.loadMe()
}

func (m settingsModel) editing() bool {
	return m.state == settingsProfileState || m.state == settingsPasswordState
}

func (m settingsModel) loadMe() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		if err != nil {
			return settingsMeLoadedMsg{err: err}
		}
		return settingsMeLoadedMsg{name: me.Name, email: me.Email}
	}
}

func (m settingsModel) saveProfile() tea.Cmd {
	name := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	c := m.client
	return func() tea.Msg {
		return settingsSavedMsg{err: c.UpdateMe(context.Background(), name, email)}
	}
}

func (m settingsModel) changePassword() tea.Cmd {
	oldPw := m.inputs[0].Value()
	newPw := m.inputs[1].Value()
	c := m.client
	return func() tea.Msg {
		return passwordChangedMsg{err: c.ChangePassword(context.Background(), oldPw, newPw)}
	}
}

func (m settingsModel) deleteAccount() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return accountDeletedMsg{err: c.DeleteAccount(context.Background())}
	}
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case settingsMeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.name = msg.name
			m.email = msg.email
			m.err = ""
		}

	case settingsSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.state = settingsMenuState
		m.notice = "profile updated"
		return m, m.loadMe()

	case passwordChangedMsg:
		m.submitting = false
		if msg.err != nil {
			switch {
			case client.IsStatus(msg.err, 400):
				m.err = "new password was rejected"
			case client.IsUnauthorized(msg.err):
				m.err = "current password is wrong"
			case client.IsForbidden(msg.err):
				m.err = "not allowed to change the password"
			default:
				m.err = msg.err.Error()
			}
			return m, nil
		}
		m.state = settingsMenuState
		m.notice = "password changed"

	case accountDeletedMsg:
		m.submitting = false
		if msg.err != nil {
			m.state = settingsMenuState
			m.err = "delete failed: " + msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return logoutMsg{} }

	case tea.KeyMsg:
		switch m.state {
		case settingsMenuState:
			return m.updateMenu(msg)
		case settingsProfileState, settingsPasswordState:
			return m.updateForm(msg)
		case settingsDeleteState:
			switch msg.String() {
			case "y":
				if m.submitting {
					return m, nil
				}
				m.submitting = true
				return m, m.deleteAccount()
			default:
				m.state = settingsMenuState
			}
			return m, nil
		}
	}
	return m, nil
}

func (m settingsModel) updateMenu(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch msg.String() {
	case "u":
		m.state = settingsProfileState
		m.inputs = makeInputs("name", "email")
		m.inputs[0].SetValue(m.name)
		m.inputs[1].SetValue(m.email)
		m.inputs[0].Focus()
		m.focus = 0
		m.err = ""
		m.notice = ""
		return m, textinput.Blink
	case "p":
		m.state = settingsPasswordState
		m.inputs = makeInputs("current password", "new password")
		for i := range m.inputs {
			m.inputs[i].EchoMode = textinput.EchoPassword
		}
		m.inputs[0].Focus()
		m.focus = 0
		m.err = ""
		m.notice = ""
		return m, textinput.Blink
	case "d":
		m.state = settingsDeleteState
		m.err = ""
		m.notice = ""
	case "l":
		return m, func() tea.Msg { return logoutMsg{} }
	}
	return m, nil
}

func makeInputs(labels ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = "  "
		ti.CharLimit = 120
		inputs[i] = ti
	}
	return inputs
}

func (m settingsModel) updateForm(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = settingsMenuState
		m.err = ""
		return m, nil
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
		fallthrough
	case "ctrl+s":
		if m.submitting {
			return m, nil
		}
		for i := range m.inputs {
			if strings.TrimSpace(m.inputs[i].Value()) == "" {
				m.err = "all fields are required"
				return m, nil
			}
		}
		m.err = ""
		m.submitting = true
		if m.state == settingsProfileState {
			return m, m.saveProfile()
		}
		return m, m.changePassword()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) refocus() (settingsModel, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Settings") + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n\n")

	switch m.state {
	case settingsProfileState, settingsPasswordState:
		for i := range m.inputs {
			b.WriteString(" " + m.inputs[i].View() + "\n")
		}
		b.WriteByte('\n')
		switch {
		case m.submitting:
			b.WriteString(" " + dimStyle.Render("saving...") + "\n")
		case m.err != "":
			b.WriteString(" " + errStyle.Render(m.err) + "\n")
		}

	case settingsDeleteState:
		b.WriteString(" " + warnStyle.Render("delete your account? this cannot be undone · press y to confirm") + "\n")
		if m.submitting {
			b.WriteString(" " + dimStyle.Render("deleting...") + "\n")
		}

	default:
		if m.name != "" {
			b.WriteString(" " + selectedStyle.Render(m.name) + "  " + dimStyle.Render(m.email) + "\n\n")
		}
		b.WriteString(" " + helpEntry("u", "update profile") + "\n")
		b.WriteString(" " + helpEntry("p", "change password") + "\n")
		b.WriteString(" " + helpEntry("l", "log out") + "\n")
		b.WriteString(" " + helpEntry("d", "delete account") + "\n")
		if m.err != "" {
			b.WriteString("\n " + errStyle.Render(m.err) + "\n")
		} else if m.notice != "" {
			b.WriteString("\n " + okStyle.Render(m.notice) + "\n")
		}
	}
	return b.String()
}

func (m settingsModel) helpKeys() string {
	switch m.state {
	case settingsProfileState, settingsPasswordState:
		return helpEntry("tab", "next field") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case settingsDeleteState:
		return helpEntry("y", "confirm") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("u/p/l/d", "actions")
	}
}
