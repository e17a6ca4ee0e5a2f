package service

import (
	"context"
	"strings"
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

func setupDocumentService(t *testing.T) (DocumentService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Document{}))
	// No storage client wired: the instance runs with uploads disabled.
	svc := NewDocumentService(repository.NewDocumentRepository(db), nil)
	return svc, db
}

func seedDocument(t *testing.T, db *gorm.DB, memberID uint, name string) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		MemberID: memberID,
		Name:     name,
		FileKey:  "documents/2026/01/" + name,
		FileURL:  "https://cdn.example.com/documents/2026/01/" + name,
		FileSize: 1024,
		FileType: "application/pdf",
	}
	require.NoError(t, db.Create(doc).Error)
	return doc
}

func TestDocumentUpload_StorageDisabled(t *testing.T) {
	svc, db := setupDocumentService(t)

	body := strings.NewReader("not really a pdf")
	doc, err := svc.Upload(context.Background(), 1, "report.pdf", "reports", "application/pdf", body, int64(body.Len()))
	require.ErrorIs(t, err, common.ErrStorageDisabled)
	assert.Nil(t, doc)

	// No orphaned metadata row
	var count int64
	require.NoError(t, db.Model(&domain.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDocumentDownloadURL_StorageDisabled(t *testing.T) {
	svc, db := setupDocumentService(t)
	doc := seedDocument(t, db, 1, "report.pdf")

	// Ownership is still enforced before the storage check
	_, err := svc.DownloadURL(context.Background(), doc.ID, 2)
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = svc.DownloadURL(context.Background(), doc.ID, 1)
	require.ErrorIs(t, err, common.ErrStorageDisabled)
}

func TestDocumentDelete_StorageFailureKeepsRow(t *testing.T) {
	svc, db := setupDocumentService(t)
	doc := seedDocument(t, db, 1, "report.pdf")

	// The object is removed before the row. When that fails the row
	// must survive so the document stays listable and retryable.
	err := svc.Delete(context.Background(), doc.ID, 1)
	require.ErrorIs(t, err, common.ErrStorageDisabled)

	var kept domain.Document
	require.NoError(t, db.First(&kept, doc.ID).Error)
	assert.Equal(t, doc.FileKey, kept.FileKey)
}

func TestAvatarUpload_StorageDisabled(t *testing.T) {
	svc, db := setupSettingsService(t)
	member := seedMember(t, db, "alice@example.com", "Alice", "Ng")

	body := strings.NewReader("png bytes")
	_, err := svc.UploadAvatar(context.Background(), member.ID, "me.png", "image/png", body, int64(body.Len()))
	require.ErrorIs(t, err, common.ErrStorageDisabled)

	// Deleting when no avatar is set still succeeds without storage
	require.NoError(t, svc.DeleteAvatar(context.Background(), member.ID))
}
