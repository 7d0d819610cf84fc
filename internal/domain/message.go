// File: internal/domain/message.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message senders. The remote assistant is always "agent".
const (
	SenderUser  = "user"
	SenderAgent = "agent"
)

// Message represents a single utterance within a chat.
// IsLoading is true only for an agent placeholder still waiting for the
// real reply; it is cleared when the content is finalized and is never
// persisted as true.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	IsLoading bool      `json:"isLoading,omitempty"`
}

// NewID returns a fresh opaque identifier for chats and messages.
func NewID() string {
	return uuid.NewString()
}
