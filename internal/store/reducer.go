// File: internal/store/reducer.go
package store

import (
	"strings"
	"time"

	"github.com/docagent/chatclient/internal/domain"
)

// titleLimit is the number of characters of the first user message used
// as the chat title before truncation.
const titleLimit = 50

// Reducer maps (state, action) to a new state. It never mutates its
// input and never panics; unaffected chats are shared between the old
// and new state. The clock and id generator are injectable for tests.
type Reducer struct {
	Now   func() time.Time
	NewID func() string
}

// NewReducer returns a reducer backed by the wall clock and uuid ids.
func NewReducer() *Reducer {
	return &Reducer{Now: time.Now, NewID: domain.NewID}
}

// Apply performs a single transition. Unknown actions return the input
// state unchanged.
func (r *Reducer) Apply(state domain.ConversationState, action Action) domain.ConversationState {
	switch a := action.(type) {
	case CreateChat:
		now := r.Now()
		chat := domain.Chat{
			ID:        r.NewID(),
			Title:     domain.DefaultChatTitle,
			Messages:  []domain.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		state.Chats = append([]domain.Chat{chat}, state.Chats...)
		state.ActiveChatID = chat.ID
		return state

	case SelectChat:
		if _, ok := state.FindChat(a.ID); ok {
			state.ActiveChatID = a.ID
		} else {
			state.ActiveChatID = ""
		}
		return state

	case DeleteChat:
		remaining := make([]domain.Chat, 0, len(state.Chats))
		for _, c := range state.Chats {
			if c.ID != a.ID {
				remaining = append(remaining, c)
			}
		}
		state.Chats = remaining
		if state.ActiveChatID == a.ID {
			if len(remaining) > 0 {
				state.ActiveChatID = remaining[0].ID
			} else {
				state.ActiveChatID = ""
			}
		}
		return state

	case AddMessage:
		msg := a.Message
		if msg.ID == "" {
			msg.ID = r.NewID()
		}
		return r.mutateChat(state, a.ChatID, func(chat *domain.Chat) {
			if len(chat.Messages) == 0 && msg.Sender == domain.SenderUser {
				chat.Title = deriveTitle(msg.Content)
			}
			chat.Messages = append(chat.Messages, msg)
		})

	case UpdateMessage:
		if !hasMessage(state, a.ChatID, a.MessageID) {
			return state
		}
		return r.mutateChat(state, a.ChatID, func(chat *domain.Chat) {
			for i := range chat.Messages {
				if chat.Messages[i].ID == a.MessageID {
					chat.Messages[i].Content = a.Content
					chat.Messages[i].IsLoading = false
					return
				}
			}
		})

	case SetLoading:
		state.IsLoading = a.Value
		return state

	case SetUsername:
		state.Username = strings.ToLower(a.Name)
		return state

	case SetFilesUploaded:
		state.HasUploadedFiles = a.Value
		return state

	case SetUploadingFiles:
		state.IsUploadingFiles = a.Value
		return state

	case LoadChats:
		chats := make([]domain.Chat, len(a.Chats))
		copy(chats, a.Chats)
		state.Chats = chats
		if len(chats) > 0 {
			state.ActiveChatID = chats[0].ID
		} else {
			state.ActiveChatID = ""
		}
		return state

	default:
		return state
	}
}

// mutateChat clones the named chat, applies fn to the clone, bumps its
// updatedAt and splices it back into a fresh chat slice. An unknown chat
// id leaves the state untouched.
func (r *Reducer) mutateChat(state domain.ConversationState, chatID string, fn func(*domain.Chat)) domain.ConversationState {
	for i, c := range state.Chats {
		if c.ID != chatID {
			continue
		}
		chat := c.Clone()
		fn(&chat)
		chat.UpdatedAt = r.Now()

		chats := make([]domain.Chat, len(state.Chats))
		copy(chats, state.Chats)
		chats[i] = chat
		state.Chats = chats
		return state
	}
	return state
}

// hasMessage reports whether the named chat holds the named message.
// An absent id on either level makes the whole transition a no-op.
func hasMessage(state domain.ConversationState, chatID, messageID string) bool {
	chat, ok := state.FindChat(chatID)
	if !ok {
		return false
	}
	for _, m := range chat.Messages {
		if m.ID == messageID {
			return true
		}
	}
	return false
}

// deriveTitle builds a chat title from the first user message: the first
// 50 characters, with an ellipsis when truncated.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}
