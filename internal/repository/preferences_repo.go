package repository

import (
	"github.com/BjornOnGit/adec-web/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferencesRepository notification preferences access interface
type PreferencesRepository interface {
	FindByMember(memberID uint) (*domain.NotificationPreferences, error)
	Upsert(prefs *domain.NotificationPreferences) error
}

type preferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new PreferencesRepository
func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) FindByMember(memberID uint) (*domain.NotificationPreferences, error) {
	var prefs domain.NotificationPreferences
	if err := r.db.Where("member_id = ?", memberID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(prefs *domain.NotificationPreferences) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email_notifications", "event_reminders", "message_notifications",
			"newsletter", "marketing_emails", "updated_at",
		}),
	}).Create(prefs).Error
}
