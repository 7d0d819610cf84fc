// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/docagent/chatclient/internal/domain"
	"github.com/docagent/chatclient/internal/services"
	"github.com/docagent/chatclient/internal/services/agent"
)

// maxUploadBytes bounds a single multipart upload submission.
const maxUploadBytes = 32 << 20

// ChatHandler exposes the conversation service to the UI as a thin JSON
// facade. It holds no state: every request reads a snapshot or dispatches
// an intent.
type ChatHandler struct {
	service *services.ConversationService
}

func NewChatHandler(service *services.ConversationService) *ChatHandler {
	return &ChatHandler{service: service}
}

// GetState returns the full conversation snapshot.
func (h *ChatHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateView(h.service.State()))
}

// CreateChat starts a new empty chat and makes it active.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, stateView(h.service.NewChat()))
}

// SelectChat activates the chat in the path.
func (h *ChatHandler) SelectChat(w http.ResponseWriter, r *http.Request) {
	state := h.service.SelectChat(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, stateView(state))
}

// DeleteChat removes the chat in the path.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	state := h.service.DeleteChat(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, stateView(state))
}

// SendMessage relays a user message to the remote agent. The service has
// already appended the user message and placeholder before the webhook
// call; by the time this handler returns, the placeholder is resolved.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, ok := h.service.State().ActiveChat(); !ok {
		writeError(w, "No active chat", http.StatusConflict)
		return
	}

	h.service.SendMessage(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, stateView(h.service.State()))
}

// SetUsername records the user identity.
func (h *ChatHandler) SetUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stateView(h.service.SetUsername(req.Username)))
}

// UploadFiles accepts a multipart submission and forwards it to the
// upload webhook through the service.
func (h *ChatHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var files []agent.File
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["file"] {
			f, err := header.Open()
			if err != nil {
				writeError(w, "Could not read uploaded file", http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(w, "Could not read uploaded file", http.StatusBadRequest)
				return
			}
			files = append(files, agent.File{Name: header.Filename, Data: data})
		}
	}

	switch err := h.service.UploadFiles(r.Context(), files); err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]bool{"uploaded": true})
	case services.ErrNothingToUpload, services.ErrUsernameRequired:
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		writeError(w, "Upload failed", http.StatusBadGateway)
	}
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// stateView shapes a snapshot for the UI, rendering agent markdown.
func stateView(state domain.ConversationState) map[string]interface{} {
	return map[string]interface{}{
		"chats":            chatViews(state.Chats),
		"activeChatId":     state.ActiveChatID,
		"isLoading":        state.IsLoading,
		"username":         state.Username,
		"hasUploadedFiles": state.HasUploadedFiles,
		"isUploadingFiles": state.IsUploadingFiles,
	}
}
