package service

import (
	"context"
	"fmt"
	"io"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/cache"
	"github.com/BjornOnGit/adec-web/pkg/logger"
	"github.com/BjornOnGit/adec-web/pkg/storage"
)

// SettingsService account settings business logic
type SettingsService interface {
	GetAccount(memberID uint) (*domain.MemberResponse, error)
	UpdateProfile(memberID uint, req *domain.UpdateProfileRequest) (*domain.MemberResponse, error)
	UploadAvatar(ctx context.Context, memberID uint, filename, contentType string, body io.Reader, size int64) (string, error)
	DeleteAvatar(ctx context.Context, memberID uint) error
	GetPreferences(memberID uint) (*domain.NotificationPreferences, error)
	UpdatePreferences(memberID uint, req *domain.UpdatePreferencesRequest) (*domain.NotificationPreferences, error)
}

type settingsService struct {
	memberRepo repository.MemberRepository
	prefsRepo  repository.PreferencesRepository
	storage    *storage.S3Client
	cache      cache.Service
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	memberRepo repository.MemberRepository,
	prefsRepo repository.PreferencesRepository,
	s3Client *storage.S3Client,
	cacheService cache.Service,
) SettingsService {
	return &settingsService{
		memberRepo: memberRepo,
		prefsRepo:  prefsRepo,
		storage:    s3Client,
		cache:      cacheService,
	}
}

// GetAccount returns the member's own account view
func (s *settingsService) GetAccount(memberID uint) (*domain.MemberResponse, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, common.ErrMemberNotFound
	}
	return member.ToResponse(), nil
}

// UpdateProfile applies the non-nil fields of the request
func (s *settingsService) UpdateProfile(memberID uint, req *domain.UpdateProfileRequest) (*domain.MemberResponse, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, common.ErrMemberNotFound
	}

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Company != nil {
		member.Company = *req.Company
	}
	if req.JobTitle != nil {
		member.JobTitle = *req.JobTitle
	}
	if req.Bio != nil {
		member.Bio = *req.Bio
	}
	if req.Location != nil {
		member.Location = *req.Location
	}
	if req.Website != nil {
		member.Website = *req.Website
	}
	if req.LinkedinURL != nil {
		member.LinkedinURL = *req.LinkedinURL
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Skills != nil {
		member.Skills = *req.Skills
	}
	if req.Interests != nil {
		member.Interests = *req.Interests
	}
	if req.ExperienceYears != nil {
		member.ExperienceYears = *req.ExperienceYears
	}
	if req.IsPublic != nil {
		member.IsPublic = *req.IsPublic
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidateDirectory()

	return member.ToResponse(), nil
}

// UploadAvatar stores the image and replaces the previous one
func (s *settingsService) UploadAvatar(ctx context.Context, memberID uint, filename, contentType string, body io.Reader, size int64) (string, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return "", common.ErrMemberNotFound
	}
	if s.storage == nil {
		return "", common.ErrStorageDisabled
	}

	key := storage.GenerateKey(storage.PrefixAvatars, filename)
	result, err := s.storage.Upload(ctx, key, body, contentType, size)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := member.AvatarKey
	if err := s.memberRepo.UpdateAvatar(memberID, result.URL, result.Key); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	if oldKey != "" {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			logger.Get().Warn().Err(err).Str("key", oldKey).Msg("failed to delete old avatar")
		}
	}

	s.invalidateDirectory()

	return result.URL, nil
}

// DeleteAvatar removes the stored image and clears the profile fields
func (s *settingsService) DeleteAvatar(ctx context.Context, memberID uint) error {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return common.ErrMemberNotFound
	}
	if member.AvatarKey == "" {
		return nil
	}
	if s.storage == nil {
		return common.ErrStorageDisabled
	}

	if err := s.storage.Delete(ctx, member.AvatarKey); err != nil {
		logger.Get().Warn().Err(err).Str("key", member.AvatarKey).Msg("failed to delete avatar object")
	}

	if err := s.memberRepo.UpdateAvatar(memberID, "", ""); err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}

	s.invalidateDirectory()

	return nil
}

// GetPreferences returns saved preferences, falling back to defaults
func (s *settingsService) GetPreferences(memberID uint) (*domain.NotificationPreferences, error) {
	prefs, err := s.prefsRepo.FindByMember(memberID)
	if err != nil {
		return domain.DefaultPreferences(memberID), nil
	}
	return prefs, nil
}

// UpdatePreferences applies the non-nil fields over the current values
func (s *settingsService) UpdatePreferences(memberID uint, req *domain.UpdatePreferencesRequest) (*domain.NotificationPreferences, error) {
	prefs, err := s.prefsRepo.FindByMember(memberID)
	if err != nil {
		prefs = domain.DefaultPreferences(memberID)
	}

	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.EventReminders != nil {
		prefs.EventReminders = *req.EventReminders
	}
	if req.MessageNotifications != nil {
		prefs.MessageNotifications = *req.MessageNotifications
	}
	if req.Newsletter != nil {
		prefs.Newsletter = *req.Newsletter
	}
	if req.MarketingEmails != nil {
		prefs.MarketingEmails = *req.MarketingEmails
	}

	if err := s.prefsRepo.Upsert(prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return prefs, nil
}

func (s *settingsService) invalidateDirectory() {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateDirectory(context.Background()); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to invalidate directory cache")
	}
}
