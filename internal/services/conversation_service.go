// File: internal/services/conversation_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/docagent/chatclient/internal/domain"
	"github.com/docagent/chatclient/internal/services/agent"
	"github.com/docagent/chatclient/internal/storage"
	"github.com/docagent/chatclient/internal/store"
)

// ErrorReply is the fixed apology shown when the gateway call fails.
// The underlying cause goes to the logs, never to the user.
const ErrorReply = "Sorry, I encountered an error while processing your request. Please try again."

var (
	ErrNothingToUpload  = errors.New("no files selected")
	ErrUsernameRequired = errors.New("username is not set")
)

// ConversationService orchestrates user intents over the store and the
// remote agent gateway. It owns no state of its own; everything lives in
// the store and is replaced through dispatches.
type ConversationService struct {
	store    *store.Store
	provider agent.Provider
	logger   Logger
	newID    func() string
	now      func() time.Time
}

func NewConversationService(st *store.Store, provider agent.Provider, logger Logger) (*ConversationService, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if provider == nil {
		return nil, errors.New("agent provider is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ConversationService{
		store:    st,
		provider: provider,
		logger:   logger,
		newID:    domain.NewID,
		now:      time.Now,
	}, nil
}

// State returns the current conversation snapshot.
func (s *ConversationService) State() domain.ConversationState {
	return s.store.State()
}

// Rehydrate loads persisted chats, username and upload flag into the
// store. Missing or malformed saved data falls back to empty state.
func (s *ConversationService) Rehydrate(p *storage.Persister) {
	chats, username, filesUploaded := p.Load()
	if len(chats) > 0 {
		s.store.Dispatch(store.LoadChats{Chats: chats})
	}
	if username != "" {
		s.store.Dispatch(store.SetUsername{Name: username})
	}
	if filesUploaded {
		s.store.Dispatch(store.SetFilesUploaded{Value: true})
	}
	s.logger.Info("state rehydrated", "chats", len(chats), "username", username)
}

// NewChat creates an empty chat and makes it active.
func (s *ConversationService) NewChat() domain.ConversationState {
	return s.store.Dispatch(store.CreateChat{})
}

// SelectChat activates the chat with the given id; an unknown id clears
// the active chat.
func (s *ConversationService) SelectChat(id string) domain.ConversationState {
	return s.store.Dispatch(store.SelectChat{ID: id})
}

// DeleteChat removes a chat, promoting the next one to active if needed.
func (s *ConversationService) DeleteChat(id string) domain.ConversationState {
	return s.store.Dispatch(store.DeleteChat{ID: id})
}

// SetUsername records the user identity, normalized to lowercase.
func (s *ConversationService) SetUsername(name string) domain.ConversationState {
	return s.store.Dispatch(store.SetUsername{Name: name})
}

// SendMessage appends the user message and a loading placeholder, then
// asks the remote agent and patches the placeholder with the reply, or
// with the fixed apology on failure. Without an active chat this is a
// no-op. The user message and placeholder are dispatched before the
// network call so the UI shows them immediately; the reply resolves
// against the chat that was active at dispatch time, even if the user
// switches chats while the request is in flight.
func (s *ConversationService) SendMessage(ctx context.Context, content string) {
	state := s.store.State()
	active, ok := state.ActiveChat()
	if !ok {
		return
	}
	chatID := active.ID

	s.store.Dispatch(store.AddMessage{
		ChatID: chatID,
		Message: domain.Message{
			Content:   content,
			Sender:    domain.SenderUser,
			Timestamp: s.now(),
		},
	})

	placeholderID := s.newID()
	s.store.Dispatch(store.AddMessage{
		ChatID: chatID,
		Message: domain.Message{
			ID:        placeholderID,
			Sender:    domain.SenderAgent,
			Timestamp: s.now(),
			IsLoading: true,
		},
	})

	reply, err := s.provider.Ask(ctx, content, state.Username)
	if err != nil {
		s.logger.Error("agent request failed", "chat_id", chatID, "error", err)
		reply = ErrorReply
	}

	s.store.Dispatch(store.UpdateMessage{
		ChatID:    chatID,
		MessageID: placeholderID,
		Content:   reply,
	})
}

// UploadFiles submits the selected documents. It requires a non-empty
// selection and a set username; the uploading flag is cleared on every
// path out, and the uploaded flag is only set on success.
func (s *ConversationService) UploadFiles(ctx context.Context, files []agent.File) error {
	state := s.store.State()
	if len(files) == 0 {
		return ErrNothingToUpload
	}
	if state.Username == "" {
		return ErrUsernameRequired
	}

	s.store.Dispatch(store.SetUploadingFiles{Value: true})
	defer s.store.Dispatch(store.SetUploadingFiles{Value: false})

	if err := s.provider.Upload(ctx, files, state.Username); err != nil {
		s.logger.Error("file upload failed", "count", len(files), "error", err)
		return err
	}

	s.store.Dispatch(store.SetFilesUploaded{Value: true})
	return nil
}
