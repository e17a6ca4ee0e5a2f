package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/cache"
	"github.com/BjornOnGit/adec-web/pkg/logger"
)

// DirectoryPage is one page of the member directory
type DirectoryPage struct {
	Members []*domain.ProfileSummary `json:"members"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	Limit   int                      `json:"limit"`
}

// DirectoryService member directory business logic
type DirectoryService interface {
	ListMembers(ctx context.Context, query string, page, limit int) (*DirectoryPage, error)
	GetProfile(id uint) (*domain.ProfileResponse, error)
	GetStats(ctx context.Context) (*domain.MemberStats, error)
}

type directoryService struct {
	memberRepo repository.MemberRepository
	cache      cache.Service
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(memberRepo repository.MemberRepository, cacheService cache.Service) DirectoryService {
	return &directoryService{
		memberRepo: memberRepo,
		cache:      cacheService,
	}
}

// ListMembers returns a page of public profiles, cache first
func (s *directoryService) ListMembers(ctx context.Context, query string, page, limit int) (*DirectoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if raw, err := s.cache.GetDirectoryPage(ctx, query, page, limit); err == nil {
			var cached DirectoryPage
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	members, total, err := s.memberRepo.SearchPublic(query, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}

	result := &DirectoryPage{
		Members: make([]*domain.ProfileSummary, 0, len(members)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for _, m := range members {
		result.Members = append(result.Members, m.ToSummary())
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetDirectoryPage(ctx, query, page, limit, result); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to cache directory page")
		}
	}

	return result, nil
}

// GetProfile returns a single directory profile. Private profiles are
// not served even by direct ID.
func (s *directoryService) GetProfile(id uint) (*domain.ProfileResponse, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrMemberNotFound
	}
	if !member.IsPublic {
		return nil, common.ErrMemberNotFound
	}
	return member.ToProfile(), nil
}

// GetStats returns aggregate directory statistics, cache first
func (s *directoryService) GetStats(ctx context.Context) (*domain.MemberStats, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if raw, err := s.cache.GetMemberStats(ctx); err == nil {
			var cached domain.MemberStats
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.memberRepo.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to load member stats: %w", err)
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetMemberStats(ctx, stats); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to cache member stats")
		}
	}

	return stats, nil
}
