package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
)

func setupMarketingService(t *testing.T) (MarketingService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.NewsletterSubscription{},
		&domain.ContactMessage{},
		&domain.Partner{},
	))
	return NewMarketingService(repository.NewMarketingRepository(db), nil), db
}

func TestSubscribeNewsletter_Idempotent(t *testing.T) {
	svc, db := setupMarketingService(t)

	require.NoError(t, svc.SubscribeNewsletter("Reader@Example.com"))
	require.NoError(t, svc.SubscribeNewsletter("reader@example.com"), "repeat subscribe succeeds")

	var count int64
	db.Model(&domain.NewsletterSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, svc.SubscribeNewsletter("not an address"), common.ErrInvalidInput)
}

func TestSubmitContact(t *testing.T) {
	svc, db := setupMarketingService(t)

	err := svc.SubmitContact(&domain.ContactRequest{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Body:  "  I have a question  ",
	})
	require.NoError(t, err)

	var msg domain.ContactMessage
	require.NoError(t, db.First(&msg).Error)
	assert.Equal(t, "I have a question", msg.Body)

	err = svc.SubmitContact(&domain.ContactRequest{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Body:  "   ",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestListPartners_DisplayOrder(t *testing.T) {
	svc, db := setupMarketingService(t)

	require.NoError(t, db.Create(&domain.Partner{Name: "Zeta", SortOrder: 2}).Error)
	require.NoError(t, db.Create(&domain.Partner{Name: "Alpha", SortOrder: 1}).Error)

	partners, err := svc.ListPartners(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 2)
	assert.Equal(t, "Alpha", partners[0].Name)
}
