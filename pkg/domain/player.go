package domain

import (
	"strings"

	"github.com/google/uuid"
)

// PlayerProfile is a player's public card shown to teams.
type PlayerProfile struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName,omitempty"`
	Age         int       `json:"age"`
	Position    string    `json:"position"`
	Skills      string    `json:"skills"`
	Experience  int       `json:"experience"`
	Description string    `json:"description,omitempty"`
}

// SkillList splits the comma-separated skills field into trimmed entries.
// Empty segments are dropped.
func (p PlayerProfile) SkillList() []string {
	if strings.TrimSpace(p.Skills) == "" {
		return nil
	}
	parts := strings.Split(p.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
