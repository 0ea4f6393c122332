package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered FutboLink account.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	AvatarPath string    `json:"avatarPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
