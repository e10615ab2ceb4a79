package conversation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/skynavi/travel-assistant/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

// summaryTimeLayout is the human-readable format used in the sidebar.
const summaryTimeLayout = "02.01.2006 15:04"

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

// Create inserts a new conversation with the default placeholder title.
func (r *gormConversationRepository) Create(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session ID is required")
	}

	conv := &domain.Conversation{
		SessionID: sessionID,
		Title:     domain.DefaultTitle,
	}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		log.Printf("[ConversationRepository] Database error creating conversation %s: %v", sessionID, err)
		return nil, errors.New("database error creating conversation")
	}

	return conv, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	var conv domain.Conversation
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Printf("[ConversationRepository] Database error finding conversation %s: %v", sessionID, err)
		return nil, errors.New("database query failed")
	}
	return &conv, nil
}

// ListWithCounts returns every conversation newest first, each with its
// message count. Conversations without messages are included with count 0.
func (r *gormConversationRepository) ListWithCounts(ctx context.Context) ([]domain.ConversationSummary, error) {
	type row struct {
		SessionID    string
		Title        string
		CreatedAt    time.Time
		MessageCount int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Select("conversations.session_id, conversations.title, conversations.created_at, COUNT(messages.id) AS message_count").
		Joins("LEFT JOIN messages ON messages.session_id = conversations.session_id").
		Group("conversations.session_id").
		Order("conversations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[ConversationRepository] Database error listing conversations: %v", err)
		return nil, errors.New("database error listing conversations")
	}

	summaries := make([]domain.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ConversationSummary{
			ID:           row.SessionID,
			Title:        row.Title,
			CreatedAt:    row.CreatedAt.Format(summaryTimeLayout),
			MessageCount: row.MessageCount,
		})
	}
	return summaries, nil
}

// RenameIfDefault updates the title only while it still carries the
// placeholder, so the first user message names the conversation exactly
// once and never overwrites a later rename.
func (r *gormConversationRepository) RenameIfDefault(ctx context.Context, sessionID, newTitle string) error {
	if sessionID == "" {
		return errors.New("session ID is required")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("session_id = ? AND title = ?", sessionID, domain.DefaultTitle).
		Update("title", newTitle)
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error renaming conversation %s: %v", sessionID, result.Error)
		return errors.New("database error renaming conversation")
	}

	// RowsAffected == 0 means the title was already customized; not an error.
	return nil
}

// Delete removes the conversation and all of its messages.
func (r *gormConversationRepository) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("session ID is required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&domain.Message{}).Error; err != nil {
			log.Printf("[ConversationRepository] Database error deleting messages for %s: %v", sessionID, err)
			return errors.New("database error deleting messages")
		}

		result := tx.Where("session_id = ?", sessionID).Delete(&domain.Conversation{})
		if result.Error != nil {
			log.Printf("[ConversationRepository] Database error deleting conversation %s: %v", sessionID, result.Error)
			return errors.New("database error deleting conversation")
		}
		if result.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
}
