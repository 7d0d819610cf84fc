// File: internal/domain/state.go
package domain

// ConversationState is the root aggregate owned by the store. Chats are
// ordered most-recent-first. The active chat is a reference by id, resolved
// against the chat sequence on every access, so a deletion can never leave
// a dangling pointer.
type ConversationState struct {
	Chats            []Chat
	ActiveChatID     string
	IsLoading        bool
	Username         string
	HasUploadedFiles bool
	IsUploadingFiles bool
}

// ActiveChat resolves the active reference against the chat sequence.
// The second return is false when no chat is active.
func (s ConversationState) ActiveChat() (Chat, bool) {
	if s.ActiveChatID == "" {
		return Chat{}, false
	}
	return s.FindChat(s.ActiveChatID)
}

// FindChat looks up a chat by id.
func (s ConversationState) FindChat(id string) (Chat, bool) {
	for _, c := range s.Chats {
		if c.ID == id {
			return c, true
		}
	}
	return Chat{}, false
}
