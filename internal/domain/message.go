package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single message within a conversation. Messages are
// append-only and immutable once written.
type Message struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	SessionID string `json:"session_id" gorm:"not null;index"`
	Role      string `json:"role" gorm:"not null"` // "user" or "assistant"
	Content   string `json:"content" gorm:"not null"`
	CreatedAt time.Time
}

// ChatMessage is the role/content pair sent to the model and returned in
// history payloads.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
