package chat

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/repository/conversation"
	"github.com/skynavi/travel-assistant/internal/repository/message"
	"github.com/skynavi/travel-assistant/internal/services/anthropic"
)

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}
func (testLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (testLogger) Warn(msg string, keysAndValues ...interface{})  {}

type stubProvider struct {
	reply string
	err   error
	calls []anthropic.CompletionRequest
}

func (s *stubProvider) Complete(ctx context.Context, req anthropic.CompletionRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(t *testing.T, provider anthropic.CompletionProvider) (*Service, message.MessageRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Conversation{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	conversations := conversation.NewConversationRepository(db)
	messages := message.NewMessageRepository(db)

	svc, err := NewService(conversations, messages, provider, DefaultConfig(),
		rand.New(rand.NewSource(7)), testLogger{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, messages
}

func TestProcessQueryPersistsBothSides(t *testing.T) {
	provider := &stubProvider{reply: "Hoş geldiniz! Seyahat amacınız nedir?"}
	svc, messages := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	reply := svc.ProcessQuery(ctx, "Merhaba", nil, sessionID)
	if reply != provider.reply {
		t.Fatalf("unexpected reply: %q", reply)
	}

	stored, err := messages.FindBySessionID(ctx, sessionID)
	if err != nil {
		t.Fatalf("FindBySessionID failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(stored))
	}
	if stored[0].Role != domain.RoleUser || stored[0].Content != "Merhaba" {
		t.Fatalf("unexpected user message: %+v", stored[0])
	}
	if stored[1].Role != domain.RoleAssistant || stored[1].Content != provider.reply {
		t.Fatalf("unexpected assistant message: %+v", stored[1])
	}
}

func TestProcessQuerySendsHistoryAndSystemPrompt(t *testing.T) {
	provider := &stubProvider{reply: "tamam"}
	svc, _ := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	svc.ProcessQuery(ctx, "Merhaba", nil, sessionID)
	svc.ProcessQuery(ctx, "Roma'ya gitmek istiyorum", nil, sessionID)

	if len(provider.calls) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(provider.calls))
	}

	second := provider.calls[1]
	if second.System != systemPrompt {
		t.Fatalf("system prompt not forwarded")
	}
	// Prior exchange plus the new user message.
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages in second call, got %d", len(second.Messages))
	}
	if second.Messages[0].Content != "Merhaba" || second.Messages[1].Content != "tamam" {
		t.Fatalf("history out of order: %+v", second.Messages)
	}
	if second.Messages[2].Content != "Roma'ya gitmek istiyorum" {
		t.Fatalf("new query must come last: %+v", second.Messages[2])
	}
}

func TestProcessQueryModelFailureReturnsApology(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	svc, messages := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	reply := svc.ProcessQuery(ctx, "Merhaba", nil, sessionID)
	if reply != apologyReply {
		t.Fatalf("expected apology, got %q", reply)
	}

	count, err := messages.CountBySessionID(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountBySessionID failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no messages must persist on model failure, got %d", count)
	}
}

func TestProcessQueryEnrichesTriggeredQuery(t *testing.T) {
	provider := &stubProvider{reply: "tamam"}
	svc, messages := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	svc.ProcessQuery(ctx, "harcama özetimi çıkar", domain.SampleSnapshot(), sessionID)

	sent := provider.calls[0].Messages
	last := sent[len(sent)-1].Content
	if last == "harcama özetimi çıkar" {
		t.Fatalf("triggered query must be enriched before the model call")
	}

	stored, err := messages.FindBySessionID(ctx, sessionID)
	if err != nil {
		t.Fatalf("FindBySessionID failed: %v", err)
	}
	if stored[0].Content != last {
		t.Fatalf("persisted user message must match the enriched query")
	}
}

func TestRenameFromFirstMessageTruncates(t *testing.T) {
	provider := &stubProvider{reply: "tamam"}
	svc, _ := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	long := "Çok uzun bir ilk mesaj: önümüzdeki yaz ailecek Ege kıyılarında iki haftalık bir tatil planlamak istiyorum"
	svc.RenameFromFirstMessage(ctx, sessionID, long)

	summaries := svc.Conversations(ctx)
	if len(summaries) != 1 {
		t.Fatalf("expected one conversation, got %d", len(summaries))
	}
	wantTitle := string([]rune(long)[:DefaultConfig().TitleMaxLength])
	if summaries[0].Title != wantTitle {
		t.Fatalf("expected truncated title %q, got %q", wantTitle, summaries[0].Title)
	}

	// A second rename must not displace the real title.
	svc.RenameFromFirstMessage(ctx, sessionID, "başka bir mesaj")
	summaries = svc.Conversations(ctx)
	if summaries[0].Title != wantTitle {
		t.Fatalf("title must stick after the first rename, got %q", summaries[0].Title)
	}
}

func TestDeleteConversation(t *testing.T) {
	provider := &stubProvider{reply: "tamam"}
	svc, messages := newTestService(t, provider)
	ctx := context.Background()

	sessionID, err := svc.StartConversation(ctx)
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}
	svc.ProcessQuery(ctx, "Merhaba", nil, sessionID)

	if err := svc.DeleteConversation(ctx, sessionID); err != nil {
		t.Fatalf("DeleteConversation failed: %v", err)
	}

	count, err := messages.CountBySessionID(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountBySessionID failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("messages must be removed with the conversation, got %d", count)
	}
	if len(svc.Conversations(ctx)) != 0 {
		t.Fatalf("conversation must be gone after delete")
	}
}
