// File: internal/storage/codec.go
package storage

import (
	"encoding/json"

	"github.com/docagent/chatclient/internal/domain"
)

// EncodeChats serializes the chat sequence as a JSON document. Instants
// are encoded as RFC 3339 strings. Loading flags are stripped: a pending
// placeholder must never survive a restart as a live spinner.
func EncodeChats(chats []domain.Chat) (string, error) {
	clean := make([]domain.Chat, len(chats))
	for i, c := range chats {
		chat := c.Clone()
		for j := range chat.Messages {
			chat.Messages[j].IsLoading = false
		}
		clean[i] = chat
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeChats parses a document produced by EncodeChats. The caller
// treats any error as "no saved data".
func DecodeChats(doc string) ([]domain.Chat, error) {
	var chats []domain.Chat
	if err := json.Unmarshal([]byte(doc), &chats); err != nil {
		return nil, err
	}
	return chats, nil
}
