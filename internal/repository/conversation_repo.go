package repository

import (
	"time"

	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository conversation data access interface
type ConversationRepository interface {
	Create(conv *domain.Conversation) error
	FindByID(id uint) (*domain.Conversation, error)
	FindByPairKey(pairKey string) (*domain.Conversation, error)
	FindByParticipant(memberID uint) ([]*domain.Conversation, error)
	Touch(id uint, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(conv *domain.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *conversationRepository) FindByID(id uint) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) FindByPairKey(pairKey string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.Where("pair_key = ?", pairKey).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindByParticipant returns all conversations the member takes part in,
// most recently active first
func (r *conversationRepository) FindByParticipant(memberID uint) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	err := r.db.Where("participant1 = ? OR participant2 = ?", memberID, memberID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

// Touch bumps the conversation's last-activity timestamp
func (r *conversationRepository) Touch(id uint, at time.Time) error {
	return r.db.Model(&domain.Conversation{}).Where("id = ?", id).
		Update("updated_at", at).Error
}
