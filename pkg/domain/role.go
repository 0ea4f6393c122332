package domain

// Role is the authorization dimension of a FutboLink account.
type Role string

// The two roles — locked, the API knows no others.
const (
	RolePlayer Role = "PLAYER"
	RoleTeam   Role = "TEAM"
)

// ValidRole returns true if the given role is known.
func ValidRole(r Role) bool {
	return r == RolePlayer || r == RoleTeam
}
