// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is the title a chat carries until its first user message.
const DefaultChatTitle = "New Chat"

// Chat represents a single conversation thread. Messages are append-only
// and kept in insertion order, which is also display order.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the chat. The reducer never mutates a chat
// in place, so every transition that touches a chat works on a clone.
func (c Chat) Clone() Chat {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}
