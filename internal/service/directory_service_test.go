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

func setupDirectoryService(t *testing.T) (DirectoryService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}))
	return NewDirectoryService(repository.NewMemberRepository(db), nil), db
}

func TestListMembers_PublicOnlyAndSearch(t *testing.T) {
	svc, db := setupDirectoryService(t)

	require.NoError(t, db.Create(&domain.Member{
		Email: "a@example.com", FirstName: "Alice", LastName: "Ng",
		Company: "Orbit Labs", IsPublic: true,
	}).Error)
	require.NoError(t, db.Create(&domain.Member{
		Email: "b@example.com", FirstName: "Bob", LastName: "Reyes",
		Company: "Orbit Labs", IsPublic: false,
	}).Error)
	require.NoError(t, db.Create(&domain.Member{
		Email: "c@example.com", FirstName: "Carol", LastName: "Dyer",
		Company: "Meadow Inc", IsPublic: true,
	}).Error)

	page, err := svc.ListMembers(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total, "private profiles are excluded")

	page, err = svc.ListMembers(context.Background(), "orbit", 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Members, 1)
	assert.Equal(t, "Alice", page.Members[0].FirstName)
}

func TestGetProfile_PrivateHidden(t *testing.T) {
	svc, db := setupDirectoryService(t)

	hidden := &domain.Member{Email: "b@example.com", FirstName: "Bob", IsPublic: false}
	require.NoError(t, db.Create(hidden).Error)

	_, err := svc.GetProfile(hidden.ID)
	assert.ErrorIs(t, err, common.ErrMemberNotFound, "private profiles 404 even by direct ID")

	_, err = svc.GetProfile(9999)
	assert.ErrorIs(t, err, common.ErrMemberNotFound)
}

func TestGetStats(t *testing.T) {
	svc, db := setupDirectoryService(t)

	require.NoError(t, db.Create(&domain.Member{Email: "a@example.com", Company: "Orbit Labs", Location: "Lagos", IsPublic: true}).Error)
	require.NoError(t, db.Create(&domain.Member{Email: "b@example.com", Company: "Orbit Labs", Location: "Accra", IsPublic: true}).Error)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMembers)
	assert.Equal(t, int64(1), stats.UniqueCompanies)
	assert.Equal(t, int64(2), stats.UniqueLocations)
}
