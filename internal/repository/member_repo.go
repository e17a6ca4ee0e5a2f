package repository

import (
	"time"

	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository member data access interface
type MemberRepository interface {
	Create(member *domain.Member) error
	FindByID(id uint) (*domain.Member, error)
	FindByIDs(ids []uint) ([]*domain.Member, error)
	FindByEmail(email string) (*domain.Member, error)
	ExistsByEmail(email string) (bool, error)
	Update(member *domain.Member) error
	UpdatePassword(id uint, hashedPassword string) error
	UpdateAvatar(id uint, avatarURL, avatarKey string) error
	UpdateLoginTime(id uint) error
	SearchPublic(query string, offset, limit int) ([]*domain.Member, int64, error)
	Stats() (*domain.MemberStats, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}

func (r *memberRepository) FindByID(id uint) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByIDs(ids []uint) ([]*domain.Member, error) {
	var members []*domain.Member
	err := r.db.Where("id IN ?", ids).Find(&members).Error
	return members, err
}

func (r *memberRepository) FindByEmail(email string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Member{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) Update(member *domain.Member) error {
	return r.db.Save(member).Error
}

func (r *memberRepository) UpdatePassword(id uint, hashedPassword string) error {
	return r.db.Model(&domain.Member{}).Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (r *memberRepository) UpdateAvatar(id uint, avatarURL, avatarKey string) error {
	return r.db.Model(&domain.Member{}).Where("id = ?", id).
		Updates(map[string]interface{}{"avatar_url": avatarURL, "avatar_key": avatarKey}).Error
}

func (r *memberRepository) UpdateLoginTime(id uint) error {
	now := time.Now()
	return r.db.Model(&domain.Member{}).Where("id = ?", id).
		Update("last_login_at", now).Error
}

// SearchPublic returns public profiles matching the query over name,
// company and job title, newest first
func (r *memberRepository) SearchPublic(query string, offset, limit int) ([]*domain.Member, int64, error) {
	var members []*domain.Member
	var total int64

	q := r.db.Model(&domain.Member{}).Where("is_public = ?", true)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"first_name LIKE ? OR last_name LIKE ? OR company LIKE ? OR job_title LIKE ?",
			like, like, like, like,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&members).Error
	return members, total, err
}

func (r *memberRepository) Stats() (*domain.MemberStats, error) {
	stats := &domain.MemberStats{}

	if err := r.db.Model(&domain.Member{}).
		Where("is_public = ?", true).
		Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&domain.Member{}).
		Where("is_public = ? AND company <> ''", true).
		Distinct("company").
		Count(&stats.UniqueCompanies).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&domain.Member{}).
		Where("is_public = ? AND location <> ''", true).
		Distinct("location").
		Count(&stats.UniqueLocations).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
