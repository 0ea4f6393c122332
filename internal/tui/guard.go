package tui

import (
	"github.com/futbolink/futbolink/internal/auth"
	"github.com/futbolink/futbolink/pkg/domain"
)

type view int

const (
	viewLoading view = iota
	viewLogin
	viewRegister
	viewHome
	viewTeams
	viewTeamForm
	viewMyTeams
	viewApplications
	viewPlayerApps
	viewProfile
	viewNotifications
	viewChats
	viewSettings
	viewUnauthorized
)

// access is the entry requirement for a view.
type access int

const (
	accessPublicOnly    access = iota // login/register; a live session bounces home
	accessOpen                        // reachable with or without a session
	accessAuthenticated               // any session
	accessPlayer                      // session with role PLAYER
	accessTeam                        // session with role TEAM
)

var viewAccess = map[view]access{
	viewLogin:         accessPublicOnly,
	viewRegister:      accessPublicOnly,
	viewHome:          accessAuthenticated,
	viewTeams:         accessOpen,
	viewTeamForm:      accessTeam,
	viewMyTeams:       accessTeam,
	viewApplications:  accessTeam,
	viewPlayerApps:    accessPlayer,
	viewProfile:       accessPlayer,
	viewNotifications: accessAuthenticated,
	viewChats:         accessAuthenticated,
	viewSettings:      accessAuthenticated,
}

// resolveView applies the entry rule for target against the current auth
// state and returns the view actually shown. While the state is still
// loading every target resolves to the loading placeholder, never to a
// redirect. Otherwise an unmet requirement resolves to login (no session),
// home (already logged in), or the unauthorized page (wrong role).
func resolveView(target view, st auth.State) view {
	if st.IsLoading {
		return viewLoading
	}
	switch viewAccess[target] {
	case accessPublicOnly:
		if st.IsAuthenticated {
			return viewHome
		}
	case accessAuthenticated:
		if !st.IsAuthenticated {
			return viewLogin
		}
	case accessPlayer:
		if !st.IsAuthenticated {
			return viewLogin
		}
		if st.Role != domain.RolePlayer {
			return viewUnauthorized
		}
	case accessTeam:
		if !st.IsAuthenticated {
			return viewLogin
		}
		if st.Role != domain.RoleTeam {
			return viewUnauthorized
		}
	}
	return target
}
