package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// chatState distinguishes between the conversation list and an open
// conversation.
type chatState int

const (
	chatListState  chatState = iota
	chatConvoState           // one application's conversation is open
)

// openChatMsg asks the app to open a conversation for an application.
type openChatMsg struct {
	applicationID string
	title         string
}

type chatListLoadedMsg struct {
	chats []domain.ChatSummary
	err   error
}

type chatMessagesLoadedMsg struct {
	applicationID string
	messages      []domain.ChatMessage
	err           error
	rearm         bool // this fetch belongs to the tick chain and owes the next tick
}

type chatSentMsg struct {
	applicationID string
	err           error
}

type chatPollTickMsg struct {
	applicationID string
}

type chatModel struct {
	client   *client.Client
	interval time.Duration
	myRole   domain.Role
	state    chatState
	chats    []domain.ChatSummary
	cursor   int
	loading  bool
	err      string
	width    int
	height   int

	// convo state, scoped by application id
	openAppID string
	openTitle string
	messages  []domain.ChatMessage
	input     string
	cursorOn  bool
	status    string
}

func newChatModel(c *client.Client, myRole domain.Role, interval time.Duration) chatModel {
	return chatModel{client: c, myRole: myRole, interval: interval, loading: true}
}

func (m chatModel) Init() tea.Cmd {
	return m.loadChats()
}

func (m chatModel) editing() bool {
	return m.state == chatConvoState
}

func (m chatModel) loadChats() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		chats, err := c.ListChats(context.Background())
		return chatListLoadedMsg{chats: chats, err: err}
	}
}

// loadMessages fetches the open conversation. Only the recurring tick chain
// passes rearm; an out-of-band fetch (after a send) must not schedule a
// second chain on top of it.
func (m chatModel) loadMessages(rearm bool) tea.Cmd {
	c := m.client
	appID := m.openAppID
	return func() tea.Msg {
		msgs, err := c.ChatMessages(context.Background(), appID)
		return chatMessagesLoadedMsg{applicationID: appID, messages: msgs, err: err, rearm: rearm}
	}
}

func (m chatModel) sendMessage(content string) tea.Cmd {
	c := m.client
	appID := m.openAppID
	return func() tea.Msg {
		return chatSentMsg{applicationID: appID, err: c.SendChatMessage(context.Background(), appID, content)}
	}
}

func (m chatModel) pollCmd() tea.Cmd {
	appID := m.openAppID
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return chatPollTickMsg{applicationID: appID}
	})
}

// open switches to the given application's conversation. A previously open
// conversation's pending ticks and responses carry the old id and are
// dropped when they arrive.
func (m chatModel) open(applicationID, title string) (chatModel, tea.Cmd) {
	m.state = chatConvoState
	m.openAppID = applicationID
	m.openTitle = title
	m.messages = nil
	m.input = ""
	m.status = ""
	m.cursorOn = true
	return m, tea.Batch(m.loadMessages(true), cursorBlinkCmd())
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chatListLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.chats = msg.chats
			m.err = ""
		}
		if m.cursor >= len(m.chats) {
			m.cursor = max(len(m.chats)-1, 0)
		}

	case chatMessagesLoadedMsg:
		if msg.applicationID == m.openAppID && m.state == chatConvoState {
			if msg.err != nil {
				m.status = "error loading messages"
			} else {
				// Replace wholesale. When two fetches race, whichever
				// resolves last wins.
				m.messages = msg.messages
				m.status = ""
			}
			if msg.rearm {
				return m, m.pollCmd()
			}
		}

	case chatPollTickMsg:
		if msg.applicationID == m.openAppID && m.state == chatConvoState {
			return m, m.loadMessages(true)
		}

	case chatSentMsg:
		if msg.applicationID != m.openAppID || m.state != chatConvoState {
			return m, nil
		}
		if msg.err != nil {
			m.status = "send failed: " + msg.err.Error()
		} else {
			m.input = ""
			m.status = ""
			return m, m.loadMessages(false)
		}

	case cursorBlinkMsg:
		if m.state == chatConvoState {
			m.cursorOn = !m.cursorOn
			return m, cursorBlinkCmd()
		}

	case tea.KeyMsg:
		m.cursorOn = true
		switch m.state {
		case chatListState:
			return m.updateList(msg)
		case chatConvoState:
			return m.updateConvo(msg)
		}
	}
	return m, nil
}

func (m chatModel) updateList(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.chats)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.chats) > 0 && m.cursor < len(m.chats) {
			ch := m.chats[m.cursor]
			return m.open(ch.ApplicationID.String(), m.chatTitle(ch))
		}
	case "r":
		return m, m.loadChats()
	}
	return m, nil
}

func (m chatModel) chatTitle(ch domain.ChatSummary) string {
	if m.myRole == domain.RoleTeam {
		return ch.PlayerName
	}
	return ch.TeamName
}

func (m chatModel) updateConvo(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.state = chatListState
		m.openAppID = ""
		m.messages = nil
		m.input = ""
		m.status = ""
		return m, m.loadChats()
	case "enter":
		content := strings.TrimSpace(m.input)
		if content == "" {
			return m, nil
		}
		// The composer is cleared when chatSentMsg confirms delivery, so a
		// failed send keeps the draft for retry.
		return m, m.sendMessage(content)
	default:
		m.input = editRune(m.input, key, domain.MaxMessageLen)
		return m, nil
	}
}

func (m chatModel) View() string {
	switch m.state {
	case chatConvoState:
		return m.viewConvo()
	default:
		return m.viewList()
	}
}

func (m chatModel) viewList() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Chats") + "\n")
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
	if len(m.chats) == 0 {
		b.WriteString("\n " + dimStyle.Render("no conversations yet · accepted applications open a chat") + "\n")
		return b.String()
	}

	for i, ch := range m.chats {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		name := normalStyle.Render(m.chatTitle(ch))
		if i == m.cursor {
			name = selectedStyle.Render(m.chatTitle(ch))
		}
		preview := truncStr(ch.LastMessage, 40)
		if preview == "" {
			preview = "no messages"
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n", cursor, name, dimStyle.Render(preview), metaStyle.Render(formatTime(ch.UpdatedAt)))
	}
	return b.String()
}

func (m chatModel) viewConvo() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Chat with ") + selectedStyle.Render(m.openTitle) + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	chrome := 5 // blank + header + sep + input + status
	viewportHeight := m.height - chrome
	if viewportHeight < 2 {
		viewportHeight = 2
	}

	if len(m.messages) == 0 {
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("no messages yet") + "\n")
	} else {
		var allLines []string
		for _, msg := range m.messages {
			line := m.renderMessage(msg)
			allLines = append(allLines, strings.Split(line, "\n")...)
		}
		total := len(allLines)
		start := total - viewportHeight
		if start < 0 {
			start = 0
		}
		visible := allLines[start:]
		padLines(viewportHeight-len(visible), &b)
		for _, line := range visible {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString(m.renderInput())
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(" " + dimStyle.Render(m.status))
	}
	return b.String()
}

func (m chatModel) renderMessage(msg domain.ChatMessage) string {
	timeStr := fmt.Sprintf("%5s", formatChatTime(msg.Timestamp))
	timePart := metaStyle.Render(timeStr)
	sep := chatSepStyle.Render(" · ")

	isSelf := msg.SenderRole == m.myRole
	var namePart string
	if isSelf {
		namePart = chatSelfNameStyle.Render("you")
	} else {
		namePart = RoleStyle(msg.SenderRole).Render(strings.ToLower(string(msg.SenderRole)))
	}

	bodyWidth := m.width - 20
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(msg.Content)
	lines := strings.Split(wrapped, "\n")

	bodyStyle := chatTextStyle
	if isSelf {
		bodyStyle = chatSelfTextStyle
	}

	result := " " + timePart + "  " + namePart + sep + bodyStyle.Render(lines[0])
	if len(lines) > 1 {
		indent := strings.Repeat(" ", 12)
		for _, line := range lines[1:] {
			result += "\n" + indent + bodyStyle.Render(line)
		}
	}
	return result
}

func (m chatModel) renderInput() string {
	const timeIndent = "        "

	sep := chatSepStyle.Render(" · ")
	namePart := chatSelfNameStyle.Render("you")
	cursor := " "
	if m.cursorOn {
		cursor = accentStyle.Render("█")
	}
	if m.input == "" {
		return timeIndent + namePart + sep + inputPlaceholderStyle.Render("type a message...") + cursor
	}
	return timeIndent + namePart + sep + chatSelfTextStyle.Render(m.input) + cursor
}

func (m chatModel) helpKeys() string {
	if m.state == chatConvoState {
		return helpEntry("enter", "send") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("r", "refresh")
}
