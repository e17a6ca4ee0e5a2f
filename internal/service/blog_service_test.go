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

func setupBlogService(t *testing.T) (BlogService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}, &domain.BlogPost{}))
	svc := NewBlogService(repository.NewBlogRepository(db), repository.NewMemberRepository(db), nil)
	return svc, db
}

func TestCreatePost_DraftByDefault(t *testing.T) {
	svc, db := setupBlogService(t)
	author := seedMember(t, db, "author@example.com", "Dana", "Kim")

	post, err := svc.CreatePost(author.ID, &domain.SavePostRequest{
		Title:   "Hello",
		Content: "First post content",
		Status:  "bogus-status",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusDraft, post.Status)
	assert.Empty(t, post.PublishedAt)

	// Drafts never appear on the public surface
	_, err = svc.GetPublished(post.ID)
	assert.ErrorIs(t, err, common.ErrPostNotFound)

	page, err := svc.ListPublished(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestPublishPost_SetsTimestampAndExcerpt(t *testing.T) {
	svc, db := setupBlogService(t)
	author := seedMember(t, db, "author@example.com", "Dana", "Kim")

	long := strings.Repeat("lorem ipsum dolor ", 30)
	post, err := svc.CreatePost(author.ID, &domain.SavePostRequest{
		Title:   "Launch",
		Content: long,
		Status:  domain.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.PublishedAt)
	assert.True(t, strings.HasSuffix(post.Excerpt, "..."))
	assert.LessOrEqual(t, len(post.Excerpt), excerptLength+3)

	got, err := svc.GetPublished(post.ID)
	require.NoError(t, err)
	assert.Equal(t, long, got.Content)
	require.NotNil(t, got.Author)
	assert.Equal(t, author.ID, got.Author.ID)

	// List view sends excerpts, not content
	page, err := svc.ListPublished(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Empty(t, page.Posts[0].Content)
	assert.NotEmpty(t, page.Posts[0].Excerpt)
}

func TestUpdatePost_AuthorOnly(t *testing.T) {
	svc, db := setupBlogService(t)
	author := seedMember(t, db, "author@example.com", "Dana", "Kim")
	other := seedMember(t, db, "other@example.com", "Sam", "Lee")

	post, err := svc.CreatePost(author.ID, &domain.SavePostRequest{
		Title:   "Mine",
		Content: "content",
	})
	require.NoError(t, err)

	_, err = svc.UpdatePost(post.ID, other.ID, &domain.SavePostRequest{Title: "Stolen", Content: "x"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.DeletePost(post.ID, other.ID)
	assert.ErrorIs(t, err, common.ErrPostNotFound, "delete is scoped to the author")

	err = svc.DeletePost(post.ID, author.ID)
	assert.NoError(t, err)
}
