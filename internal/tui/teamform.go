package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// editTeamMsg asks the app to open the team form prefilled for editing.
type editTeamMsg struct {
	team domain.Team
}

type teamSavedMsg struct {
	err error
}

type teamFormModel struct {
	client     *client.Client
	inputs     []textinput.Model // name, location, category, description
	focus      int
	editID     string // empty means create
	submitting bool
	err        string
	width      int
	height     int
}

func newTeamFormModel(c *client.Client) teamFormModel {
	labels := []string{"name", "location", "category", "description"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = "  "
		ti.CharLimit = 300
		inputs[i] = ti
	}
	inputs[0].Focus()
	return teamFormModel{client: c, inputs: inputs}
}

func (m teamFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m teamFormModel) editing() bool {
	return true
}

// prefill loads an existing team into the form for editing.
func (m teamFormModel) prefill(t domain.Team) teamFormModel {
	m.editID = t.ID.String()
	m.inputs[0].SetValue(t.Name)
	m.inputs[1].SetValue(t.Location)
	m.inputs[2].SetValue(t.Category)
	m.inputs[3].SetValue(t.Description)
	m.err = ""
	m.submitting = false
	m.focus = 0
	return m.focusFirst()
}

func (m teamFormModel) reset() teamFormModel {
	m.editID = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.err = ""
	m.submitting = false
	m.focus = 0
	return m.focusFirst()
}

func (m teamFormModel) focusFirst() teamFormModel {
	for i := range m.inputs {
		if i == 0 {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m teamFormModel) submit() tea.Cmd {
	req := client.TeamRequest{
		Name:        strings.TrimSpace(m.inputs[0].Value()),
		Location:    strings.TrimSpace(m.inputs[1].Value()),
		Category:    strings.TrimSpace(m.inputs[2].Value()),
		Description: strings.TrimSpace(m.inputs[3].Value()),
	}
	c := m.client
	editID := m.editID
	return func() tea.Msg {
		if editID != "" {
			return teamSavedMsg{err: c.UpdateTeam(context.Background(), editID, req)}
		}
		_, err := c.CreateTeam(context.Background(), req)
		return teamSavedMsg{err: err}
	}
}

func (m teamFormModel) Update(msg tea.Msg) (teamFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case teamSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "enter":
			m.focus = (m.focus + 1) % len(m.inputs)
			return m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			return m.refocus()
		case "ctrl+s":
			if m.submitting {
				return m, nil
			}
			if strings.TrimSpace(m.inputs[0].Value()) == "" {
				m.err = "name is required"
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

func (m teamFormModel) refocus() (teamFormModel, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m teamFormModel) View() string {
	var b strings.Builder
	title := "New team"
	if m.editID != "" {
		title = "Edit team"
	}
	b.WriteString("\n " + titleStyle.Render(title) + "\n\n")
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
	return b.String()
}

func (m teamFormModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
}
