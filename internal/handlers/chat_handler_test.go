package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/skynavi/travel-assistant/internal/domain"
)

type stubChatService struct {
	sessionID    string
	startErr     error
	reply        string
	history      []domain.ChatMessage
	summaries    []domain.ConversationSummary
	renamedTo    string
	processed    string
	deletedID    string
	deleteErr    error
	processCalls int
}

func (s *stubChatService) StartConversation(ctx context.Context) (string, error) {
	return s.sessionID, s.startErr
}

func (s *stubChatService) ProcessQuery(ctx context.Context, query string, snapshot *domain.FinanceSnapshot, sessionID string) string {
	s.processed = query
	s.processCalls++
	return s.reply
}

func (s *stubChatService) History(ctx context.Context, sessionID string) []domain.ChatMessage {
	return s.history
}

func (s *stubChatService) Conversations(ctx context.Context) []domain.ConversationSummary {
	return s.summaries
}

func (s *stubChatService) RenameFromFirstMessage(ctx context.Context, sessionID, firstMessage string) {
	s.renamedTo = firstMessage
}

func (s *stubChatService) DeleteConversation(ctx context.Context, sessionID string) error {
	s.deletedID = sessionID
	return s.deleteErr
}

type stubSuggester struct {
	suggestions []string
}

func (s *stubSuggester) Suggest(ctx context.Context, botMessage string, history []domain.ChatMessage) []string {
	return s.suggestions
}

func newTestRouter(h *ChatHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	router.HandleFunc("/conversation/{id}", h.LoadConversation).Methods(http.MethodGet)
	router.HandleFunc("/conversation/{id}", h.DeleteConversation).Methods(http.MethodDelete)
	router.HandleFunc("/new_chat", h.NewChat).Methods(http.MethodPost)
	router.HandleFunc("/send_message", h.SendMessage).Methods(http.MethodPost)
	return router
}

func TestHomeStartsSession(t *testing.T) {
	svc := &stubChatService{
		sessionID: "abc-123",
		summaries: []domain.ConversationSummary{{ID: "abc-123", Title: domain.DefaultTitle}},
	}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		CurrentSession      string                       `json:"current_session"`
		ConversationHistory []map[string]string          `json:"conversation_history"`
		Conversations       []domain.ConversationSummary `json:"conversations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.CurrentSession != "abc-123" {
		t.Fatalf("unexpected session: %q", payload.CurrentSession)
	}
	if payload.ConversationHistory == nil || len(payload.ConversationHistory) != 0 {
		t.Fatalf("expected empty history array, got %v", payload.ConversationHistory)
	}
	if len(payload.Conversations) != 1 {
		t.Fatalf("expected sidebar with one conversation, got %v", payload.Conversations)
	}
}

func TestSendMessageHappyPath(t *testing.T) {
	svc := &stubChatService{
		reply: "Hangi şehire gitmek istersiniz?",
		history: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "Tatile çıkmak istiyorum"},
			{Role: domain.RoleAssistant, Content: "Hangi **şehire** gitmek istersiniz?"},
		},
	}
	suggester := &stubSuggester{suggestions: []string{"İstanbul", "Roma"}}
	router := newTestRouter(NewChatHandler(svc, suggester, nil))

	body := `{"message": "  Tatile çıkmak istiyorum  ", "session_id": "abc-123"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Response            string   `json:"response"`
		Suggestions         []string `json:"suggestions"`
		ConversationHistory []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			HTML    string `json:"html"`
		} `json:"conversation_history"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Response != svc.reply {
		t.Fatalf("unexpected response: %q", payload.Response)
	}
	if len(payload.Suggestions) != 2 {
		t.Fatalf("unexpected suggestions: %v", payload.Suggestions)
	}

	// Leading and trailing spaces are trimmed before processing, and the
	// trimmed message becomes the candidate title.
	if svc.processed != "Tatile çıkmak istiyorum" {
		t.Fatalf("expected trimmed query, got %q", svc.processed)
	}
	if svc.renamedTo != "Tatile çıkmak istiyorum" {
		t.Fatalf("expected rename with trimmed message, got %q", svc.renamedTo)
	}

	if len(payload.ConversationHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(payload.ConversationHistory))
	}
	if payload.ConversationHistory[0].HTML != "" {
		t.Fatalf("user messages must not carry rendered HTML")
	}
	if !strings.Contains(payload.ConversationHistory[1].HTML, "<strong>") {
		t.Fatalf("assistant markdown must render to HTML, got %q", payload.ConversationHistory[1].HTML)
	}
}

func TestSendMessageValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty message", `{"message": "   ", "session_id": "abc-123"}`},
		{"missing session", `{"message": "Merhaba"}`},
		{"malformed body", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubChatService{}
			router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(tc.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var payload map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload["error"] != "Mesaj gönderilirken bir hata oluştu" {
				t.Fatalf("unexpected error message: %q", payload["error"])
			}
			if payload["details"] == "" {
				t.Fatalf("expected details in error payload")
			}
			if svc.processCalls != 0 {
				t.Fatalf("invalid requests must not reach the query processor")
			}
		})
	}
}

func TestLoadConversation(t *testing.T) {
	svc := &stubChatService{
		history: []domain.ChatMessage{{Role: domain.RoleUser, Content: "Merhaba"}},
	}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversation/abc-123", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		CurrentSession      string              `json:"current_session"`
		ConversationHistory []map[string]string `json:"conversation_history"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.CurrentSession != "abc-123" {
		t.Fatalf("unexpected session: %q", payload.CurrentSession)
	}
	if len(payload.ConversationHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(payload.ConversationHistory))
	}
}

func TestNewChat(t *testing.T) {
	svc := &stubChatService{sessionID: "fresh-1"}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/new_chat", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success || payload.SessionID != "fresh-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestNewChatFailure(t *testing.T) {
	svc := &stubChatService{startErr: errors.New("db down")}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/new_chat", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Success || payload.Error == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDeleteConversation(t *testing.T) {
	svc := &stubChatService{}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/conversation/abc-123", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.deletedID != "abc-123" {
		t.Fatalf("expected delete of abc-123, got %q", svc.deletedID)
	}
}

func TestDeleteConversationFailure(t *testing.T) {
	svc := &stubChatService{deleteErr: errors.New("not found")}
	router := newTestRouter(NewChatHandler(svc, &stubSuggester{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/conversation/abc-123", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
