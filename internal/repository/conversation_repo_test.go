package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BjornOnGit/adec-web/internal/domain"
)

func setupConvDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Conversation{}))
	return db
}

func TestConversationRepo_PairKeyUnique(t *testing.T) {
	db := setupConvDB(t)
	repo := NewConversationRepository(db)

	key := domain.PairKeyFor(2, 1)
	require.NoError(t, repo.Create(&domain.Conversation{Participant1: 1, Participant2: 2, PairKey: key}))

	// A second row for the same unordered pair violates the unique index
	err := repo.Create(&domain.Conversation{Participant1: 2, Participant2: 1, PairKey: key})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestConversationRepo_FindByParticipantOrder(t *testing.T) {
	db := setupConvDB(t)
	repo := NewConversationRepository(db)

	first := &domain.Conversation{Participant1: 1, Participant2: 2, PairKey: domain.PairKeyFor(1, 2)}
	second := &domain.Conversation{Participant1: 1, Participant2: 3, PairKey: domain.PairKeyFor(1, 3)}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	// Touching the older conversation moves it to the front
	require.NoError(t, repo.Touch(first.ID, time.Now().Add(time.Hour)))

	convs, err := repo.FindByParticipant(1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, first.ID, convs[0].ID)

	convs, err = repo.FindByParticipant(3)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, second.ID, convs[0].ID)

	convs, err = repo.FindByParticipant(99)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestPairKeyFor_Normalized(t *testing.T) {
	assert.Equal(t, domain.PairKeyFor(1, 2), domain.PairKeyFor(2, 1))
	assert.Equal(t, "3:11", domain.PairKeyFor(11, 3))
}
