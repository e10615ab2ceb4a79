package message

import (
	"context"

	"github.com/skynavi/travel-assistant/internal/domain"
)

// MessageRepository handles the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error)
	CountBySessionID(ctx context.Context, sessionID string) (int64, error)
}
