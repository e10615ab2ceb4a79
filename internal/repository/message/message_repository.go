package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/skynavi/travel-assistant/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends one message to the log.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message for session %s: %v", message.SessionID, err)
		return nil, errors.New("database error creating message")
	}

	return message, nil
}

// FindBySessionID returns the full history in creation order. The id
// tiebreak keeps same-timestamp messages in insertion order.
func (r *gormMessageRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for session %s: %v", sessionID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

func (r *gormMessageRepository) CountBySessionID(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, errors.New("session ID is required")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("session_id = ?", sessionID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for session %s: %v", sessionID, err)
		return 0, errors.New("database error counting messages")
	}

	return count, nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.SessionID == "" {
		return errors.New("session ID is required")
	}
	if message.Role != domain.RoleUser && message.Role != domain.RoleAssistant {
		return fmt.Errorf("invalid role %q", message.Role)
	}
	if strings.TrimSpace(message.Content) == "" {
		return errors.New("message content cannot be empty")
	}
	return nil
}
