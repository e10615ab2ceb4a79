package domain

import "time"

// DefaultTitle is the placeholder every new conversation starts with.
// The first user message replaces it exactly once.
const DefaultTitle = "Yeni Konuşma"

// Conversation represents a single chat thread, keyed by an opaque
// session identifier generated on first visit or "new chat".
type Conversation struct {
	SessionID string `gorm:"primarykey"`
	Title     string
	CreatedAt time.Time
}

// ConversationSummary is the sidebar view of a conversation: one row per
// thread with a human-formatted creation time and a message count.
type ConversationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	MessageCount int64  `json:"message_count"`
}
