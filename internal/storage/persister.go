// File: internal/storage/persister.go
package storage

import (
	"strconv"

	"github.com/docagent/chatclient/internal/domain"
)

// Persister mirrors store transitions into the KV. It is registered as a
// post-transition hook: writes are fire-and-forget relative to the
// in-memory state, a failed write is logged and never rolls anything back.
type Persister struct {
	kv     KV
	logger Logger
}

func NewPersister(kv KV, logger Logger) *Persister {
	return &Persister{kv: kv, logger: logger}
}

// OnTransition persists whatever the transition changed:
// the chat collection after every change to the chat sequence, the
// username only when non-empty, and the uploaded-files flag on every
// change including a reset to false.
func (p *Persister) OnTransition(old, new domain.ConversationState) {
	if !sameChats(old.Chats, new.Chats) && len(new.Chats) > 0 {
		doc, err := EncodeChats(new.Chats)
		if err != nil {
			p.logger.Error("failed to encode chats", "error", err)
		} else if err := p.kv.Write(KeyChats, doc); err != nil {
			p.logger.Error("failed to persist chats", "error", err)
		}
	}

	if old.Username != new.Username && new.Username != "" {
		if err := p.kv.Write(KeyUsername, new.Username); err != nil {
			p.logger.Error("failed to persist username", "error", err)
		}
	}

	if old.HasUploadedFiles != new.HasUploadedFiles {
		if err := p.kv.Write(KeyFilesUploaded, strconv.FormatBool(new.HasUploadedFiles)); err != nil {
			p.logger.Error("failed to persist uploaded-files flag", "error", err)
		}
	}
}

// Load rehydrates saved state. Missing or malformed records fall back to
// the zero value for that record; nothing here is fatal.
func (p *Persister) Load() (chats []domain.Chat, username string, filesUploaded bool) {
	if doc, ok, err := p.kv.Read(KeyChats); err != nil {
		p.logger.Error("failed to read saved chats", "error", err)
	} else if ok {
		decoded, err := DecodeChats(doc)
		if err != nil {
			p.logger.Warn("discarding malformed saved chats", "error", err)
		} else {
			chats = decoded
		}
	}

	if v, ok, err := p.kv.Read(KeyUsername); err != nil {
		p.logger.Error("failed to read saved username", "error", err)
	} else if ok {
		username = v
	}

	if v, ok, err := p.kv.Read(KeyFilesUploaded); err != nil {
		p.logger.Error("failed to read uploaded-files flag", "error", err)
	} else if ok {
		filesUploaded = v == "true"
	}

	return chats, username, filesUploaded
}

// sameChats reports whether two chat sequences are the same value. The
// reducer allocates a fresh slice whenever the sequence changes, so
// backing-array identity is an exact change detector.
func sameChats(a, b []domain.Chat) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
