package repository

import (
	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// BlogRepository blog post data access interface
type BlogRepository interface {
	Create(post *domain.BlogPost) error
	FindByID(id uint) (*domain.BlogPost, error)
	FindPublished(offset, limit int) ([]*domain.BlogPost, int64, error)
	FindByAuthor(authorID uint) ([]*domain.BlogPost, error)
	Update(post *domain.BlogPost) error
	Delete(id, authorID uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(post *domain.BlogPost) error {
	return r.db.Create(post).Error
}

func (r *blogRepository) FindByID(id uint) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) FindPublished(offset, limit int) ([]*domain.BlogPost, int64, error) {
	var posts []*domain.BlogPost
	var total int64

	q := r.db.Model(&domain.BlogPost{}).Where("status = ?", domain.PostStatusPublished)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *blogRepository) FindByAuthor(authorID uint) ([]*domain.BlogPost, error) {
	var posts []*domain.BlogPost
	err := r.db.Where("author_id = ?", authorID).
		Order("updated_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *blogRepository) Update(post *domain.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a post only when owned by the author
func (r *blogRepository) Delete(id, authorID uint) error {
	result := r.db.Where("id = ? AND author_id = ?", id, authorID).
		Delete(&domain.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
