package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/cache"
	"github.com/BjornOnGit/adec-web/pkg/logger"
)

const partnersCacheKey = "partners:all"

// MarketingService public site business logic (newsletter, contact,
// partners)
type MarketingService interface {
	SubscribeNewsletter(email string) error
	SubmitContact(req *domain.ContactRequest) error
	ListPartners(ctx context.Context) ([]*domain.Partner, error)
}

type marketingService struct {
	marketingRepo repository.MarketingRepository
	cache         cache.Service
}

// NewMarketingService creates a new MarketingService
func NewMarketingService(marketingRepo repository.MarketingRepository, cacheService cache.Service) MarketingService {
	return &marketingService{
		marketingRepo: marketingRepo,
		cache:         cacheService,
	}
}

// SubscribeNewsletter records a signup. Subscribing twice with the same
// address succeeds.
func (s *marketingService) SubscribeNewsletter(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return common.ErrInvalidInput
	}
	return s.marketingRepo.SubscribeNewsletter(email)
}

// SubmitContact stores a contact form submission
func (s *marketingService) SubmitContact(req *domain.ContactRequest) error {
	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Body:    strings.TrimSpace(req.Body),
	}
	if msg.Name == "" || msg.Body == "" {
		return common.ErrInvalidInput
	}
	return s.marketingRepo.CreateContactMessage(msg)
}

// ListPartners returns the partner list in display order, cache first
func (s *marketingService) ListPartners(ctx context.Context) ([]*domain.Partner, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		var cached []*domain.Partner
		if err := s.cache.Get(ctx, partnersCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	partners, err := s.marketingRepo.FindPartners()
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.Set(ctx, partnersCacheKey, partners, cache.TTLPartners); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to cache partners")
		}
	}

	return partners, nil
}
