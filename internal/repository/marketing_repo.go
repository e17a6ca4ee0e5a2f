package repository

import (
	"errors"

	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// MarketingRepository data access for the public marketing surface
// (newsletter signups, contact messages, partners)
type MarketingRepository interface {
	SubscribeNewsletter(email string) error
	CreateContactMessage(msg *domain.ContactMessage) error
	FindPartners() ([]*domain.Partner, error)
}

type marketingRepository struct {
	db *gorm.DB
}

// NewMarketingRepository creates a new MarketingRepository
func NewMarketingRepository(db *gorm.DB) MarketingRepository {
	return &marketingRepository{db: db}
}

// SubscribeNewsletter inserts a signup; an existing subscription for the
// same email is treated as success (idempotent by email)
func (r *marketingRepository) SubscribeNewsletter(email string) error {
	err := r.db.Create(&domain.NewsletterSubscription{Email: email}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *marketingRepository) CreateContactMessage(msg *domain.ContactMessage) error {
	return r.db.Create(msg).Error
}

func (r *marketingRepository) FindPartners() ([]*domain.Partner, error) {
	var partners []*domain.Partner
	err := r.db.Order("sort_order ASC, name ASC").Find(&partners).Error
	return partners, err
}
