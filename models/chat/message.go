package chat

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "model"
)

// Message is one transcript entry. Messages are never edited once appended.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// NewMessage stamps a message with a fresh id and the given time in epoch millis.
func NewMessage(role Role, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: at.UnixMilli(),
	}
}
