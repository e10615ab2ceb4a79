// File: internal/services/chat/service.go
package chat

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/repository/conversation"
	"github.com/skynavi/travel-assistant/internal/repository/message"
	"github.com/skynavi/travel-assistant/internal/services/anthropic"
)

// Service is the query processor: it loads history, enriches the query
// with toy analytics, calls the model and persists both sides of the
// exchange. Model and storage failures never escape ProcessQuery; they
// degrade to a fixed apology reply.
type Service struct {
	conversations conversation.ConversationRepository
	messages      message.MessageRepository
	provider      anthropic.CompletionProvider
	config        *Config
	rng           *rand.Rand
	logger        Logger
}

func NewService(
	conversations conversation.ConversationRepository,
	messages message.MessageRepository,
	provider anthropic.CompletionProvider,
	config *Config,
	rng *rand.Rand,
	logger Logger,
) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		conversations: conversations,
		messages:      messages,
		provider:      provider,
		config:        config,
		rng:           rng,
		logger:        logger,
	}, nil
}

// StartConversation creates a fresh session with the placeholder title.
func (s *Service) StartConversation(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	if _, err := s.conversations.Create(ctx, sessionID); err != nil {
		s.logger.Error("failed to create conversation", "session_id", sessionID, "error", err)
		return "", err
	}
	s.logger.Info("conversation started", "session_id", sessionID)
	return sessionID, nil
}

// ProcessQuery runs the full pipeline for one user message and returns the
// assistant reply. Exactly two messages are persisted per successful call;
// none when the model call fails.
func (s *Service) ProcessQuery(ctx context.Context, query string, snapshot *domain.FinanceSnapshot, sessionID string) string {
	history := s.History(ctx, sessionID)

	enriched := EnrichQuery(query, snapshot, s.rng)

	messages := append(history, domain.ChatMessage{Role: domain.RoleUser, Content: enriched})
	response, err := s.provider.Complete(ctx, anthropic.CompletionRequest{
		Messages:    messages,
		System:      systemPrompt,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		s.logger.Error("error processing query", "session_id", sessionID,
			"error", NewCompletionError(sessionID, err))
		return apologyReply
	}

	if _, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   enriched,
	}); err != nil {
		s.logger.Error("error processing query", "session_id", sessionID,
			"error", NewPersistenceError(sessionID, "failed to save user message", err))
		return apologyReply
	}
	if _, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   response,
	}); err != nil {
		s.logger.Error("error processing query", "session_id", sessionID,
			"error", NewPersistenceError(sessionID, "failed to save assistant message", err))
		return apologyReply
	}

	return response
}

// History returns the conversation as role/content pairs, oldest first.
// Load errors degrade to an empty history rather than failing the request.
func (s *Service) History(ctx context.Context, sessionID string) []domain.ChatMessage {
	stored, err := s.messages.FindBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load history", "session_id", sessionID, "error", err)
		return []domain.ChatMessage{}
	}

	history := make([]domain.ChatMessage, 0, len(stored))
	for _, msg := range stored {
		history = append(history, domain.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return history
}

// Conversations lists every thread newest first; empty on storage error.
func (s *Service) Conversations(ctx context.Context) []domain.ConversationSummary {
	summaries, err := s.conversations.ListWithCounts(ctx)
	if err != nil {
		s.logger.Warn("failed to list conversations", "error", err)
		return []domain.ConversationSummary{}
	}
	return summaries
}

// RenameFromFirstMessage makes the first user message the conversation
// title, truncated to the configured length. Best-effort: a failure is
// logged and the chat flow continues.
func (s *Service) RenameFromFirstMessage(ctx context.Context, sessionID, firstMessage string) {
	title := firstMessage
	if runes := []rune(title); len(runes) > s.config.TitleMaxLength {
		title = string(runes[:s.config.TitleMaxLength])
	}
	if err := s.conversations.RenameIfDefault(ctx, sessionID, title); err != nil {
		s.logger.Warn("failed to rename conversation", "session_id", sessionID, "error", err)
	}
}

// DeleteConversation removes a thread and its messages.
func (s *Service) DeleteConversation(ctx context.Context, sessionID string) error {
	return s.conversations.Delete(ctx, sessionID)
}
