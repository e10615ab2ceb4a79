package conversation

import (
	"context"

	"github.com/skynavi/travel-assistant/internal/domain"
)

// ConversationRepository handles conversation data operations.
type ConversationRepository interface {
	Create(ctx context.Context, sessionID string) (*domain.Conversation, error)
	FindByID(ctx context.Context, sessionID string) (*domain.Conversation, error)
	ListWithCounts(ctx context.Context) ([]domain.ConversationSummary, error)
	RenameIfDefault(ctx context.Context, sessionID, newTitle string) error
	Delete(ctx context.Context, sessionID string) error
}
