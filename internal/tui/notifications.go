package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// The notification poller runs for the whole lifetime of a session, not just
// while its view is visible. Every tick and every response carries the
// generation it was issued under; after a logout or re-login bumps the
// generation, stragglers from the old session are dropped on arrival.

type notifLoadedMsg struct {
	gen   int
	items []domain.Notification
	err   error
	rearm bool // this fetch belongs to the tick chain and owes the next tick
}

type notifTickMsg struct {
	gen int
}

type notifMarkedMsg struct {
	err error
}

type notifModel struct {
	client   *client.Client
	logger   *zap.Logger
	interval time.Duration
	gen      int
	active   bool
	items    []domain.Notification
	cursor   int
	loaded   bool
	width    int
	height   int
}

func newNotifModel(c *client.Client, logger *zap.Logger, interval time.Duration) notifModel {
	return notifModel{client: c, logger: logger, interval: interval}
}

// start begins polling under a fresh generation. Called when a session
// appears.
func (m notifModel) start() (notifModel, tea.Cmd) {
	m.gen++
	m.active = true
	m.items = nil
	m.loaded = false
	return m, m.load(true)
}

// stop tears the poller down. In-flight ticks and responses for the old
// generation become no-ops.
func (m notifModel) stop() notifModel {
	m.gen++
	m.active = false
	m.items = nil
	m.loaded = false
	return m
}

func (m notifModel) unread() int {
	n := 0
	for _, it := range m.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// load fetches the list. Only the recurring tick chain passes rearm; a
// manual refresh must not schedule a second chain on top of it.
func (m notifModel) load(rearm bool) tea.Cmd {
	c := m.client
	gen := m.gen
	return func() tea.Msg {
		items, err := c.Notifications(context.Background())
		return notifLoadedMsg{gen: gen, items: items, err: err, rearm: rearm}
	}
}

func (m notifModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return notifTickMsg{gen: gen}
	})
}

func (m notifModel) markAllRead() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return notifMarkedMsg{err: c.MarkNotificationsRead(context.Background())}
	}
}

func (m notifModel) Update(msg tea.Msg) (notifModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case notifTickMsg:
		if msg.gen != m.gen || !m.active {
			return m, nil
		}
		return m, m.load(true)

	case notifLoadedMsg:
		if msg.gen != m.gen || !m.active {
			return m, nil
		}
		m.loaded = true
		if msg.err != nil {
			// Fail-soft: an unreachable or rejecting server shows an empty
			// list and the schedule keeps running.
			m.items = nil
			if m.logger != nil {
				m.logger.Warn("notification poll failed", zap.Error(msg.err))
			}
		} else {
			m.items = msg.items
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		if msg.rearm {
			return m, m.tick()
		}
		return m, nil

	case notifMarkedMsg:
		if msg.err != nil && m.logger != nil {
			m.logger.Warn("mark-as-read failed", zap.Error(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "m":
			if len(m.items) == 0 {
				return m, nil
			}
			// Optimistic: the list clears now and stays cleared even if the
			// request fails.
			m.items = nil
			m.cursor = 0
			return m, m.markAllRead()
		case "r":
			if m.active {
				return m, m.load(false)
			}
		}
	}
	return m, nil
}

func (m notifModel) View() string {
	var b strings.Builder
	title := "Notifications"
	if n := m.unread(); n > 0 {
		title = fmt.Sprintf("Notifications (%d unread)", n)
	}
	b.WriteString("\n " + titleStyle.Render(title) + "\n")
	sep := strings.Repeat("─", max(m.width-2, 4))
	b.WriteString(" " + metaStyle.Render(sep) + "\n")

	if !m.loaded {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString("\n " + dimStyle.Render("nothing new") + "\n")
		return b.String()
	}

	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		dot := "  "
		if !it.Read {
			dot = unreadDotStyle.Render("●") + " "
		}
		text := normalStyle.Render(truncStr(it.Message, max(m.width-20, 20)))
		if it.Read {
			text = dimStyle.Render(truncStr(it.Message, max(m.width-20, 20)))
		}
		fmt.Fprintf(&b, " %s%s%s  %s\n", cursor, dot, text, metaStyle.Render(formatTime(it.CreatedAt)))
	}
	return b.String()
}

func (m notifModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("m", "mark all read") + "  " + helpEntry("r", "refresh")
}
