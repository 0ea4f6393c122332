package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

var errInvalidNumber = errors.New("age and experience must be numbers")

type profileLoadedMsg struct {
	profile *domain.PlayerProfile
	err     error
}

type profileSavedMsg struct {
	profile *domain.PlayerProfile
	err     error
}

type profileModel struct {
	client     *client.Client
	profile    *domain.PlayerProfile
	none       bool // 404: no profile created yet
	editMode   bool
	inputs     []textinput.Model // age, position, skills, experience, description
	focus      int
	submitting bool
	loading    bool
	err        string
	width      int
	height     int
}

func newProfileModel(c *client.Client) profileModel {
	labels := []string{"age", "position", "skills (comma separated)", "years of experience", "description"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = "  "
		ti.CharLimit = 300
		inputs[i] = ti
	}
	return profileModel{client: c, inputs: inputs, loading: true}
}

func (m profileModel) Init() tea.Cmd {
	return m.load()
}

func (m profileModel) editing() bool {
	return m.editMode
}

func (m profileModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		p, err := c.MyPlayerProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m profileModel) save() tea.Cmd {
	age, ageErr := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
	exp, expErr := strconv.Atoi(strings.TrimSpace(m.inputs[3].Value()))
	if ageErr != nil || expErr != nil {
		return func() tea.Msg {
			return profileSavedMsg{err: errInvalidNumber}
		}
	}
	req := client.PlayerProfileRequest{
		Age:         age,
		Position:    strings.TrimSpace(m.inputs[1].Value()),
		Skills:      strings.TrimSpace(m.inputs[2].Value()),
		Experience:  exp,
		Description: strings.TrimSpace(m.inputs[4].Value()),
	}
	c := m.client
	return func() tea.Msg {
		p, err := c.SavePlayerProfile(context.Background(), req)
		return profileSavedMsg{profile: p, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileLoadedMsg:
		m.loading = false
		switch {
		case msg.err == nil:
			m.profile = msg.profile
			m.none = false
			m.err = ""
		case client.IsNotFound(msg.err):
			m.profile = nil
			m.none = true
			m.err = ""
		default:
			m.err = msg.err.Error()
		}

	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.none = false
		m.editMode = false
		m.err = ""

	case tea.KeyMsg:
		if m.editMode {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "e":
			m = m.enterEdit()
			return m, textinput.Blink
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m profileModel) enterEdit() profileModel {
	m.editMode = true
	m.err = ""
	m.focus = 0
	if m.profile != nil {
		m.inputs[0].SetValue(strconv.Itoa(m.profile.Age))
		m.inputs[1].SetValue(m.profile.Position)
		m.inputs[2].SetValue(m.profile.Skills)
		m.inputs[3].SetValue(strconv.Itoa(m.profile.Experience))
		m.inputs[4].SetValue(m.profile.Description)
	} else {
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
	}
	for i := range m.inputs {
		if i == 0 {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m profileModel) updateEdit(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editMode = false
		m.err = ""
		return m, nil
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
		m.submitting = true
		m.err = ""
		return m, m.save()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m profileModel) refocus() (profileModel, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Player profile") + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	if m.editMode {
		b.WriteByte('\n')
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

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case m.err != "":
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
	case m.none:
		b.WriteString("\n " + dimStyle.Render("no profile yet · press e to create one") + "\n")
	case m.profile != nil:
		p := m.profile
		b.WriteString("\n " + selectedStyle.Render(p.UserName) + "  " + metaStyle.Render(p.Position) + "\n")
		b.WriteString(" " + dimStyle.Render(strconv.Itoa(p.Age)+" years old · "+strconv.Itoa(p.Experience)+" years playing") + "\n")
		if skills := p.SkillList(); len(skills) > 0 {
			b.WriteString(" " + accentStyle.Render(strings.Join(skills, " · ")) + "\n")
		}
		if p.Description != "" {
			b.WriteByte('\n')
			desc := lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(p.Description)
			for _, line := range strings.Split(desc, "\n") {
				b.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

func (m profileModel) helpKeys() string {
	if m.editMode {
		return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit") + "  " + helpEntry("r", "refresh")
}
