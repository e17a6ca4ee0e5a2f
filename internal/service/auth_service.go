package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/jwt"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	JobTitle  string `json:"job_title"`
}

// LoginResponse login response
type LoginResponse struct {
	User         *domain.MemberResponse `json:"user"`
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token"`
}

// TokenPair token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService authentication business logic
type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	Me(memberID uint) (*domain.MemberResponse, error)
	ChangePassword(memberID uint, current, updated string) error
}

type authService struct {
	memberRepo repository.MemberRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(memberRepo repository.MemberRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		memberRepo: memberRepo,
		jwtManager: jwtManager,
	}
}

// Register creates a member account and logs it in
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.memberRepo.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, common.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &domain.Member{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Company:   strings.TrimSpace(req.Company),
		JobTitle:  strings.TrimSpace(req.JobTitle),
		IsPublic:  true,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return s.issueTokens(member)
}

// Login authenticates a member and returns tokens
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	member, err := s.memberRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	// best effort, login still succeeds without the timestamp
	_ = s.memberRepo.UpdateLoginTime(member.ID)

	return s.issueTokens(member)
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.FindByID(claims.MemberID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(member.ID, member.Email, member.FirstName+" "+member.LastName)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtManager.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// Me returns the authenticated member's own account
func (s *authService) Me(memberID uint) (*domain.MemberResponse, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, common.ErrMemberNotFound
	}
	return member.ToResponse(), nil
}

// ChangePassword verifies the current password before replacing it
func (s *authService) ChangePassword(memberID uint, current, updated string) error {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return common.ErrMemberNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(current)); err != nil {
		return common.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.memberRepo.UpdatePassword(memberID, string(hashed))
}

func (s *authService) issueTokens(member *domain.Member) (*LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(member.ID, member.Email, member.FirstName+" "+member.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResponse{
		User:         member.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
