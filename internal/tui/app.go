package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/futbolink/futbolink/internal/auth"
	"github.com/futbolink/futbolink/internal/config"
	"github.com/futbolink/futbolink/pkg/client"
	"github.com/futbolink/futbolink/pkg/domain"
)

// navigateMsg asks the app to switch views through the guard.
type navigateMsg struct {
	target view
}

// authLoadedMsg carries the settled auth state at startup.
type authLoadedMsg struct {
	state auth.State
}

// App is the root Bubbletea model. It owns the auth state, routes messages
// to the per-view sub-models, and hosts the notification poller for the
// whole session lifetime.
type App struct {
	provider *auth.Provider
	cfg      *config.Config
	logger   *zap.Logger
	client   *client.Client
	state    auth.State
	view     view

	login         loginModel
	register      registerModel
	home          homeModel
	teams         teamsModel
	teamForm      teamFormModel
	myTeams       myTeamsModel
	applications  applicationsModel
	playerApps    playerAppsModel
	profile       profileModel
	notifications notifModel
	chat          chatModel
	settings      settingsModel

	width  int
	height int
}

// NewApp creates the TUI application. The auth state starts loading; the
// guard shows the placeholder until the provider settles.
func NewApp(provider *auth.Provider, cfg *config.Config, logger *zap.Logger) App {
	a := App{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		state:    auth.State{IsLoading: true},
		view:     viewLoading,
	}
	a = a.buildModels("")
	return a
}

// buildModels recreates every sub-model against a client holding the given
// token. The notification poller's generation survives the rebuild so that
// stragglers from the previous session cannot land in the new one.
func (a App) buildModels(token string) App {
	a.client = client.New(a.cfg.APIBaseURL, token)
	gen := a.notifications.gen

	a.login = newLoginModel(a.client)
	a.register = newRegisterModel(a.client)
	a.home = newHomeModel(a.client)
	a.teams = newTeamsModel(a.client, a.state.Role)
	a.teamForm = newTeamFormModel(a.client)
	a.myTeams = newMyTeamsModel(a.client)
	a.applications = newApplicationsModel(a.client)
	a.playerApps = newPlayerAppsModel(a.client)
	a.profile = newProfileModel(a.client)
	a.notifications = newNotifModel(a.client, a.logger, a.cfg.NotificationInterval())
	a.notifications.gen = gen
	a.chat = newChatModel(a.client, a.state.Role, a.cfg.ChatInterval())
	a.settings = newSettingsModel(a.client)

	return a.propagateSize()
}

func (a App) propagateSize() App {
	if a.width == 0 {
		return a
	}
	bodyMsg := tea.WindowSizeMsg{Width: a.width, Height: a.height - chromeLines}
	a.login, _ = a.login.Update(bodyMsg)
	a.register, _ = a.register.Update(bodyMsg)
	a.home, _ = a.home.Update(bodyMsg)
	a.teams, _ = a.teams.Update(bodyMsg)
	a.teamForm, _ = a.teamForm.Update(bodyMsg)
	a.myTeams, _ = a.myTeams.Update(bodyMsg)
	a.applications, _ = a.applications.Update(bodyMsg)
	a.playerApps, _ = a.playerApps.Update(bodyMsg)
	a.profile, _ = a.profile.Update(bodyMsg)
	a.notifications, _ = a.notifications.Update(bodyMsg)
	a.chat, _ = a.chat.Update(bodyMsg)
	a.settings, _ = a.settings.Update(bodyMsg)
	return a
}

// chromeLines is header(2) + tabs(1) + help(1).
const chromeLines = 4

func (a App) Init() tea.Cmd {
	provider := a.provider
	return func() tea.Msg {
		return authLoadedMsg{state: provider.Load()}
	}
}

// rebuildSession applies a settled auth state: fresh client, fresh
// sub-models, guarded landing view, notification poller up or down.
func (a App) rebuildSession(st auth.State) (App, tea.Cmd) {
	a.notifications = a.notifications.stop()
	a.state = st
	a = a.buildModels(st.Token)

	var cmds []tea.Cmd
	if st.IsAuthenticated {
		a.view = resolveView(viewHome, st)
		cmds = append(cmds, a.home.Init())
		var pollCmd tea.Cmd
		a.notifications, pollCmd = a.notifications.start()
		cmds = append(cmds, pollCmd)
	} else {
		a.view = viewLogin
		cmds = append(cmds, a.login.Init())
	}
	return a, tea.Batch(cmds...)
}

// navigate switches to target through the guard and fires the resolved
// view's Init so it refreshes on entry.
func (a App) navigate(target view) (App, tea.Cmd) {
	resolved := resolveView(target, a.state)
	if resolved == a.view {
		return a, nil
	}
	a.view = resolved
	switch resolved {
	case viewLogin:
		return a, a.login.Init()
	case viewRegister:
		return a, a.register.Init()
	case viewHome:
		return a, a.home.Init()
	case viewTeams:
		return a, a.teams.Init()
	case viewTeamForm:
		a.teamForm = a.teamForm.reset()
		return a, a.teamForm.Init()
	case viewMyTeams:
		return a, a.myTeams.Init()
	case viewApplications:
		return a, a.applications.Init()
	case viewPlayerApps:
		return a, a.playerApps.Init()
	case viewProfile:
		return a, a.profile.Init()
	case viewChats:
		return a, a.chat.Init()
	case viewSettings:
		return a, a.settings.Init()
	case viewUnauthorized:
		return a, nil
	}
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a = a.propagateSize()
		return a, nil

	case authLoadedMsg:
		return a.rebuildSession(msg.state)

	case authResultMsg:
		if msg.err == nil && msg.token != "" {
			if err := a.provider.SaveToken(msg.token); err != nil && a.logger != nil {
				a.logger.Error("saving session token", zap.Error(err))
			}
			return a.rebuildSession(a.provider.Load())
		}
		// Failure: the active form shows it.

	case logoutMsg:
		if err := a.provider.Clear(); err != nil && a.logger != nil {
			a.logger.Error("clearing session token", zap.Error(err))
		}
		return a.rebuildSession(a.provider.Load())

	case navigateMsg:
		return a.navigate(msg.target)

	case editTeamMsg:
		resolved := resolveView(viewTeamForm, a.state)
		if resolved != viewTeamForm {
			return a.navigate(resolved)
		}
		a.view = viewTeamForm
		a.teamForm = a.teamForm.prefill(msg.team)
		return a, textinput.Blink

	case teamSavedMsg:
		if msg.err == nil && a.view == viewTeamForm {
			a.teamForm = a.teamForm.reset()
			a.view = resolveView(viewMyTeams, a.state)
			return a, a.myTeams.Init()
		}

	case openChatMsg:
		resolved := resolveView(viewChats, a.state)
		if resolved != viewChats {
			return a.navigate(resolved)
		}
		a.view = viewChats
		var cmd tea.Cmd
		a.chat, cmd = a.chat.open(msg.applicationID, msg.title)
		return a, cmd

	case notifTickMsg, notifLoadedMsg, notifMarkedMsg:
		// The poller lives at app scope; its messages bypass view routing.
		var cmd tea.Cmd
		a.notifications, cmd = a.notifications.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+r":
			if !a.state.IsAuthenticated && !a.state.IsLoading {
				if a.view == viewLogin {
					return a.navigate(viewRegister)
				}
				return a.navigate(viewLogin)
			}
		case "ctrl+b":
			if !a.state.IsAuthenticated && !a.state.IsLoading {
				return a.navigate(viewTeams)
			}
		case "esc":
			switch a.view {
			case viewTeamForm:
				return a.navigate(viewMyTeams)
			case viewTeams:
				if !a.state.IsAuthenticated && !a.teams.editing() && a.teams.state == teamsListState {
					return a.navigate(viewLogin)
				}
			}
		}

		if !a.isEditing() {
			if msg.String() == "q" {
				return a, tea.Quit
			}
			for _, t := range a.tabs() {
				if msg.String() == t.key {
					return a.navigate(t.target)
				}
			}
		}
	}

	return a.routeToActive(msg)
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewTeams:
		a.teams, cmd = a.teams.Update(msg)
	case viewTeamForm:
		a.teamForm, cmd = a.teamForm.Update(msg)
	case viewMyTeams:
		a.myTeams, cmd = a.myTeams.Update(msg)
	case viewApplications:
		a.applications, cmd = a.applications.Update(msg)
	case viewPlayerApps:
		a.playerApps, cmd = a.playerApps.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewNotifications:
		a.notifications, cmd = a.notifications.Update(msg)
	case viewChats:
		a.chat, cmd = a.chat.Update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return a.login.editing()
	case viewRegister:
		return a.register.editing()
	case viewTeams:
		return a.teams.editing()
	case viewTeamForm:
		return a.teamForm.editing()
	case viewProfile:
		return a.profile.editing()
	case viewChats:
		return a.chat.editing()
	case viewSettings:
		return a.settings.editing()
	}
	return false
}

type tabEntry struct {
	key    string
	name   string
	target view
}

func (a App) tabs() []tabEntry {
	if !a.state.IsAuthenticated {
		return []tabEntry{
			{"1", "Sign in", viewLogin},
			{"2", "Register", viewRegister},
			{"3", "Teams", viewTeams},
		}
	}
	if a.state.Role == domain.RoleTeam {
		return []tabEntry{
			{"1", "Home", viewHome},
			{"2", "Teams", viewTeams},
			{"3", "My teams", viewMyTeams},
			{"4", "Inbox", viewApplications},
			{"5", "Chats", viewChats},
			{"6", "Alerts", viewNotifications},
			{"7", "Settings", viewSettings},
		}
	}
	return []tabEntry{
		{"1", "Home", viewHome},
		{"2", "Teams", viewTeams},
		{"3", "Applications", viewPlayerApps},
		{"4", "Chats", viewChats},
		{"5", "Alerts", viewNotifications},
		{"6", "Profile", viewProfile},
		{"7", "Settings", viewSettings},
	}
}

func (a App) View() string {
	logo := logoStyle.Render("F U T B O L I N K")
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"
	if a.state.IsAuthenticated {
		who := RoleStyle(a.state.Role).Render(string(a.state.Role))
		whoPad := (a.width - lipgloss.Width(who)) / 2
		if whoPad < 0 {
			whoPad = 0
		}
		header += strings.Repeat(" ", whoPad) + who
	}

	tabs := a.tabs()
	colWidth := 1
	if len(tabs) > 0 && a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.target == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		if t.target == viewNotifications {
			if n := a.notifications.unread(); n > 0 {
				label += " " + unreadDotStyle.Render(fmt.Sprintf("●%d", n))
			}
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewLoading:
		body = "\n " + dimStyle.Render("loading session...")
		help = ""
	case viewLogin:
		body = a.login.View()
		help = " " + a.login.helpKeys() + "  " + helpEntry("ctrl+b", "browse teams")
	case viewRegister:
		body = a.register.View()
		help = " " + a.register.helpKeys()
	case viewHome:
		body = a.home.View()
		help = " " + helpEntry("1-7", "tabs") + "  " + a.home.helpKeys() + "  " + helpEntry("q", "quit")
	case viewTeams:
		body = a.teams.View()
		help = " " + a.teams.helpKeys()
	case viewTeamForm:
		body = a.teamForm.View()
		help = " " + a.teamForm.helpKeys()
	case viewMyTeams:
		body = a.myTeams.View()
		help = " " + helpEntry("1-7", "tabs") + "  " + a.myTeams.helpKeys()
	case viewApplications:
		body = a.applications.View()
		help = " " + helpEntry("1-7", "tabs") + "  " + a.applications.helpKeys()
	case viewPlayerApps:
		body = a.playerApps.View()
		help = " " + helpEntry("1-7", "tabs") + "  " + a.playerApps.helpKeys()
	case viewProfile:
		body = a.profile.View()
		help = " " + a.profile.helpKeys()
	case viewNotifications:
		body = a.notifications.View()
		help = " " + helpEntry("1-7", "tabs") + "  " + a.notifications.helpKeys()
	case viewChats:
		body = a.chat.View()
		help = " " + a.chat.helpKeys()
	case viewSettings:
		body = a.settings.View()
		help = " " + a.settings.helpKeys()
	case viewUnauthorized:
		body = "\n " + warnStyle.Render("403 · no permission to view this page") + "\n\n " +
			dimStyle.Render("your account's role does not grant access here")
		help = " " + helpEntry("1", "home") + "  " + helpEntry("q", "quit")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-chromeLines), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}
