package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a single pending notification for the current account.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
