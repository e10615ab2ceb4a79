// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/services/markdown"
)

// ChatService is the slice of the query processor the HTTP layer needs.
type ChatService interface {
	StartConversation(ctx context.Context) (string, error)
	ProcessQuery(ctx context.Context, query string, snapshot *domain.FinanceSnapshot, sessionID string) string
	History(ctx context.Context, sessionID string) []domain.ChatMessage
	Conversations(ctx context.Context) []domain.ConversationSummary
	RenameFromFirstMessage(ctx context.Context, sessionID, firstMessage string)
	DeleteConversation(ctx context.Context, sessionID string) error
}

// Suggester derives candidate follow-up replies for the latest exchange.
type Suggester interface {
	Suggest(ctx context.Context, botMessage string, history []domain.ChatMessage) []string
}

type ChatHandler struct {
	chat      ChatService
	suggester Suggester
	snapshot  *domain.FinanceSnapshot
}

func NewChatHandler(chat ChatService, suggester Suggester, snapshot *domain.FinanceSnapshot) *ChatHandler {
	return &ChatHandler{
		chat:      chat,
		suggester: suggester,
		snapshot:  snapshot,
	}
}

// historyEntry is one message in the payload; assistant messages carry a
// markdown-rendered HTML form alongside the raw content.
type historyEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
}

type sessionPayload struct {
	CurrentSession      string                       `json:"current_session"`
	ConversationHistory []historyEntry               `json:"conversation_history"`
	Conversations       []domain.ConversationSummary `json:"conversations"`
}

type sendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type sendMessageResponse struct {
	Response            string                       `json:"response"`
	Suggestions         []string                     `json:"suggestions"`
	ConversationHistory []historyEntry               `json:"conversation_history"`
	Conversations       []domain.ConversationSummary `json:"conversations"`
}

// Home starts a fresh session and returns it with the sidebar. Session
// identity is explicit: the client keeps the returned id and passes it on
// every later request.
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.chat.StartConversation(r.Context())
	if err != nil {
		writeError(w, "Bir hata oluştu", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload{
		CurrentSession:      sessionID,
		ConversationHistory: []historyEntry{},
		Conversations:       h.chat.Conversations(r.Context()),
	})
}

// LoadConversation switches the client to an existing session.
func (h *ChatHandler) LoadConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, "Konuşma yüklenirken bir hata oluştu", "missing session ID", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload{
		CurrentSession:      sessionID,
		ConversationHistory: renderHistory(h.chat.History(r.Context(), sessionID)),
		Conversations:       h.chat.Conversations(r.Context()),
	})
}

// NewChat creates a fresh session on explicit request.
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.chat.StartConversation(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": sessionID,
	})
}

// SendMessage runs the full pipeline for one user message: title update on
// the first message, query processing, history reload and suggestions.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Mesaj gönderilirken bir hata oluştu", "invalid request body", http.StatusBadRequest)
		return
	}

	userMessage := strings.TrimSpace(req.Message)
	if userMessage == "" {
		writeError(w, "Mesaj gönderilirken bir hata oluştu", "empty message", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		writeError(w, "Mesaj gönderilirken bir hata oluştu", "no active session", http.StatusBadRequest)
		return
	}

	// First message becomes the conversation title.
	h.chat.RenameFromFirstMessage(r.Context(), req.SessionID, userMessage)

	response := h.chat.ProcessQuery(r.Context(), userMessage, h.snapshot, req.SessionID)

	history := h.chat.History(r.Context(), req.SessionID)
	suggestions := h.suggester.Suggest(r.Context(), response, history)

	writeJSON(w, http.StatusOK, sendMessageResponse{
		Response:            response,
		Suggestions:         suggestions,
		ConversationHistory: renderHistory(history),
		Conversations:       h.chat.Conversations(r.Context()),
	})
}

// DeleteConversation removes a session and its messages.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, "Konuşma silinemedi", "missing session ID", http.StatusBadRequest)
		return
	}

	if err := h.chat.DeleteConversation(r.Context(), sessionID); err != nil {
		writeError(w, "Konuşma silinemedi", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func renderHistory(history []domain.ChatMessage) []historyEntry {
	entries := make([]historyEntry, 0, len(history))
	for _, msg := range history {
		entry := historyEntry{Role: msg.Role, Content: msg.Content}
		if msg.Role == domain.RoleAssistant {
			entry.HTML = markdown.Render(msg.Content)
		}
		entries = append(entries, entry)
	}
	return entries
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending {error, details} responses.
func writeError(w http.ResponseWriter, message, details string, status int) {
	writeJSON(w, status, map[string]string{"error": message, "details": details})
}
