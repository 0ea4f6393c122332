package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the server-authoritative state of a join application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusAccepted ApplicationStatus = "ACCEPTED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// Final returns true once the status can no longer change.
func (s ApplicationStatus) Final() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Application is a player's request to join a team. The team side sees the
// player's identity, the player side sees the team's.
type Application struct {
	ID         uuid.UUID         `json:"id"`
	Status     ApplicationStatus `json:"status"`
	Message    string            `json:"message,omitempty"`
	PlayerName string            `json:"playerName,omitempty"`
	TeamID     uuid.UUID         `json:"teamId,omitempty"`
	TeamName   string            `json:"teamName,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
