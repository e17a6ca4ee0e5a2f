package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/cache"
	"github.com/BjornOnGit/adec-web/pkg/logger"
)

const excerptLength = 200

// BlogPage is one page of the published blog listing
type BlogPage struct {
	Posts []*domain.BlogPostResponse `json:"posts"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}

// BlogService blog business logic
type BlogService interface {
	ListPublished(ctx context.Context, page, limit int) (*BlogPage, error)
	GetPublished(id uint) (*domain.BlogPostResponse, error)
	ListByAuthor(authorID uint) ([]*domain.BlogPostResponse, error)
	CreatePost(authorID uint, req *domain.SavePostRequest) (*domain.BlogPostResponse, error)
	UpdatePost(id, authorID uint, req *domain.SavePostRequest) (*domain.BlogPostResponse, error)
	DeletePost(id, authorID uint) error
}

type blogService struct {
	blogRepo   repository.BlogRepository
	memberRepo repository.MemberRepository
	cache      cache.Service
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repository.BlogRepository, memberRepo repository.MemberRepository, cacheService cache.Service) BlogService {
	return &blogService{
		blogRepo:   blogRepo,
		memberRepo: memberRepo,
		cache:      cacheService,
	}
}

// ListPublished returns a page of published posts (excerpts only),
// cache first
func (s *blogService) ListPublished(ctx context.Context, page, limit int) (*BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if raw, err := s.cache.GetPublishedPosts(ctx, page, limit); err == nil {
			var cached BlogPage
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	posts, total, err := s.blogRepo.FindPublished((page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := &BlogPage{
		Posts: make([]*domain.BlogPostResponse, 0, len(posts)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, post := range posts {
		result.Posts = append(result.Posts, post.ToResponse(s.authorSummary(post.AuthorID), false))
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetPublishedPosts(ctx, page, limit, result); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to cache blog page")
		}
	}

	return result, nil
}

// GetPublished returns one published post with full content. Drafts are
// not served on the public surface.
func (s *blogService) GetPublished(id uint) (*domain.BlogPostResponse, error) {
	post, err := s.blogRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrPostNotFound
	}
	if post.Status != domain.PostStatusPublished {
		return nil, common.ErrPostNotFound
	}
	return post.ToResponse(s.authorSummary(post.AuthorID), true), nil
}

// ListByAuthor returns the author's own posts, drafts included
func (s *blogService) ListByAuthor(authorID uint) ([]*domain.BlogPostResponse, error) {
	posts, err := s.blogRepo.FindByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	author := s.authorSummary(authorID)
	out := make([]*domain.BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.ToResponse(author, false))
	}
	return out, nil
}

// CreatePost creates a post for the author. An empty excerpt defaults
// to the leading content text.
func (s *blogService) CreatePost(authorID uint, req *domain.SavePostRequest) (*domain.BlogPostResponse, error) {
	post := &domain.BlogPost{
		AuthorID: authorID,
	}
	s.apply(post, req)

	if err := s.blogRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidatePublished(post.Status)

	return post.ToResponse(s.authorSummary(authorID), true), nil
}

// UpdatePost replaces the post fields. Only the author may update.
func (s *blogService) UpdatePost(id, authorID uint, req *domain.SavePostRequest) (*domain.BlogPostResponse, error) {
	post, err := s.blogRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrPostNotFound
	}
	if post.AuthorID != authorID {
		return nil, common.ErrForbidden
	}

	wasPublished := post.Status == domain.PostStatusPublished
	s.apply(post, req)

	if err := s.blogRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if wasPublished || post.Status == domain.PostStatusPublished {
		s.invalidatePublished(domain.PostStatusPublished)
	}

	return post.ToResponse(s.authorSummary(authorID), true), nil
}

// DeletePost removes the post. Only the author may delete.
func (s *blogService) DeletePost(id, authorID uint) error {
	if err := s.blogRepo.Delete(id, authorID); err != nil {
		return common.ErrPostNotFound
	}
	s.invalidatePublished(domain.PostStatusPublished)
	return nil
}

func (s *blogService) apply(post *domain.BlogPost, req *domain.SavePostRequest) {
	post.Title = req.Title
	post.Content = req.Content
	post.FeaturedImage = req.FeaturedImage
	post.Tags = req.Tags

	post.Category = req.Category
	if post.Category == "" {
		post.Category = "general"
	}

	post.Excerpt = strings.TrimSpace(req.Excerpt)
	if post.Excerpt == "" {
		post.Excerpt = defaultExcerpt(req.Content)
	}

	status := req.Status
	if status != domain.PostStatusPublished {
		status = domain.PostStatusDraft
	}
	if status == domain.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.Status = status
}

func (s *blogService) authorSummary(authorID uint) *domain.ProfileSummary {
	member, err := s.memberRepo.FindByID(authorID)
	if err != nil {
		return nil
	}
	return member.ToSummary()
}

func (s *blogService) invalidatePublished(status string) {
	if status != domain.PostStatusPublished {
		return
	}
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidatePublishedPosts(context.Background()); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to invalidate blog cache")
	}
}

func defaultExcerpt(content string) string {
	text := strings.Join(strings.Fields(content), " ")
	if len(text) <= excerptLength {
		return text
	}
	cut := strings.LastIndex(text[:excerptLength], " ")
	if cut <= 0 {
		cut = excerptLength
	}
	return text[:cut] + "..."
}
