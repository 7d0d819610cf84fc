// File: internal/store/actions.go
package store

import "github.com/docagent/chatclient/internal/domain"

// Action is a state transition request. The reducer is total over all of
// these; an action it does not recognize is a no-op, never an error.
type Action interface{ isAction() }

// CreateChat prepends a new empty chat and makes it active.
type CreateChat struct{}

// SelectChat makes the chat with the given id active. An unknown id
// clears the active reference.
type SelectChat struct {
	ID string
}

// DeleteChat removes the chat with the given id. If it was active, the
// first remaining chat is promoted, or the active reference is cleared.
type DeleteChat struct {
	ID string
}

// AddMessage appends a message to the named chat. A message without an id
// is assigned a fresh one. Unknown chat ids are ignored.
type AddMessage struct {
	ChatID  string
	Message domain.Message
}

// UpdateMessage replaces the content of a message and clears its loading
// flag. Unknown chat or message ids are ignored.
type UpdateMessage struct {
	ChatID    string
	MessageID string
	Content   string
}

// SetLoading sets the global loading flag.
type SetLoading struct {
	Value bool
}

// SetUsername sets the username, normalized to lowercase.
type SetUsername struct {
	Name string
}

// SetFilesUploaded sets the has-uploaded-files flag.
type SetFilesUploaded struct {
	Value bool
}

// SetUploadingFiles sets the upload-in-progress flag.
type SetUploadingFiles struct {
	Value bool
}

// LoadChats replaces the whole chat sequence, used at rehydration. The
// first chat becomes active, or no chat if the sequence is empty.
type LoadChats struct {
	Chats []domain.Chat
}

func (CreateChat) isAction()        {}
func (SelectChat) isAction()        {}
func (DeleteChat) isAction()        {}
func (AddMessage) isAction()        {}
func (UpdateMessage) isAction()     {}
func (SetLoading) isAction()        {}
func (SetUsername) isAction()       {}
func (SetFilesUploaded) isAction()  {}
func (SetUploadingFiles) isAction() {}
func (LoadChats) isAction()         {}
