package repository

import (
	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	Create(msg *domain.Message) error
	FindByID(id uint) (*domain.Message, error)
	FindByConversation(conversationID uint, limit int) ([]*domain.Message, error)
	LastInConversation(conversationID uint) (*domain.Message, error)
	MarkConversationRead(conversationID, readerID uint) error
	CountUnread(conversationID, readerID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) FindByID(id uint) (*domain.Message, error) {
	var msg domain.Message
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindByConversation returns up to limit messages ordered ascending by
// creation time; equal timestamps keep insertion order via the id tiebreak
func (r *messageRepository) FindByConversation(conversationID uint, limit int) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) LastInConversation(conversationID uint) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkConversationRead flips the read flag for every unread message in
// the conversation not sent by the reader. Single UPDATE, idempotent.
func (r *messageRepository) MarkConversationRead(conversationID, readerID uint) error {
	return r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conversationID, readerID, false).
		Update("read", true).Error
}

func (r *messageRepository) CountUnread(conversationID, readerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND `read` = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}
