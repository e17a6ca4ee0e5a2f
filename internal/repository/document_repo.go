package repository

import (
	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// DocumentRepository document metadata access interface
type DocumentRepository interface {
	Create(doc *domain.Document) error
	FindByID(id uint) (*domain.Document, error)
	FindByOwner(memberID uint) ([]*domain.Document, error)
	Delete(id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *domain.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) FindByID(id uint) (*domain.Document, error) {
	var doc domain.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByOwner(memberID uint) ([]*domain.Document, error) {
	var docs []*domain.Document
	err := r.db.Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Document{}, id).Error
}
