// File: internal/handlers/render.go
package handlers

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/docagent/chatclient/internal/domain"
)

// messageView is a message as the UI consumes it: the raw content plus,
// for agent replies, the markdown rendered to HTML.
type messageView struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	HTML      string `json:"html,omitempty"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
	IsLoading bool   `json:"isLoading,omitempty"`
}

type chatView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []messageView `json:"messages"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

var markdown = goldmark.New()

func chatViews(chats []domain.Chat) []chatView {
	out := make([]chatView, len(chats))
	for i, c := range chats {
		msgs := make([]messageView, len(c.Messages))
		for j, m := range c.Messages {
			msgs[j] = messageView{
				ID:        m.ID,
				Content:   m.Content,
				Sender:    m.Sender,
				Timestamp: m.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				IsLoading: m.IsLoading,
			}
			if m.Sender == domain.SenderAgent && !m.IsLoading && m.Content != "" {
				msgs[j].HTML = renderMarkdown(m.Content)
			}
		}
		out[i] = chatView{
			ID:        c.ID,
			Title:     c.Title,
			Messages:  msgs,
			CreatedAt: c.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			UpdatedAt: c.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}
	return out
}

// renderMarkdown converts an agent reply to HTML. On a conversion error
// the raw text is returned and the UI falls back to plain rendering.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}
