package migration

import (
	"gorm.io/gorm"

	"github.com/BjornOnGit/adec-web/internal/domain"
)

// Run executes AutoMigrate for every application table
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Member{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Event{},
		&domain.EventRegistration{},
		&domain.Document{},
		&domain.BlogPost{},
		&domain.NewsletterSubscription{},
		&domain.ContactMessage{},
		&domain.Partner{},
		&domain.NotificationPreferences{},
	)
}

// SeedPartners inserts the default partner list when the table is empty
func SeedPartners(db *gorm.DB) error {
	var count int64
	db.Model(&domain.Partner{}).Count(&count)
	if count > 0 {
		return nil
	}

	partners := []domain.Partner{
		{Name: "TechBridge Alliance", Website: "https://techbridge.example.org", SortOrder: 1},
		{Name: "Northgate Ventures", Website: "https://northgate.example.com", SortOrder: 2},
		{Name: "Civic Data Lab", Website: "https://civicdata.example.org", SortOrder: 3},
	}
	return db.Create(&partners).Error
}
