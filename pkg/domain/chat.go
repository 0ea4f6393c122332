package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLen is the server-enforced cap on chat message content, in runes.
const MaxMessageLen = 500

// ChatMessage is one message inside an application's conversation.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	SenderRole Role      `json:"senderRole"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatSummary is one entry in the conversation list. A conversation is
// identified by the application that opened it.
type ChatSummary struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	TeamName      string    `json:"teamName"`
	PlayerName    string    `json:"playerName"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
