package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a team looking for players.
type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	LogoPath    string    `json:"logoPath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
