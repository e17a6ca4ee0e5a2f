package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/pkg/jwt"
)

// --- Mock MemberRepository ---

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(member *domain.Member) error {
	return m.Called(member).Error(0)
}

func (m *mockMemberRepo) FindByID(id uint) (*domain.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *mockMemberRepo) FindByIDs(ids []uint) ([]*domain.Member, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *mockMemberRepo) FindByEmail(email string) (*domain.Member, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *mockMemberRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemberRepo) Update(member *domain.Member) error {
	return m.Called(member).Error(0)
}

func (m *mockMemberRepo) UpdatePassword(id uint, hashedPassword string) error {
	return m.Called(id, hashedPassword).Error(0)
}

func (m *mockMemberRepo) UpdateAvatar(id uint, avatarURL, avatarKey string) error {
	return m.Called(id, avatarURL, avatarKey).Error(0)
}

func (m *mockMemberRepo) UpdateLoginTime(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockMemberRepo) SearchPublic(query string, offset, limit int) ([]*domain.Member, int64, error) {
	args := m.Called(query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Member), args.Get(1).(int64), args.Error(2)
}

func (m *mockMemberRepo) Stats() (*domain.MemberStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberStats), args.Error(1)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager("test-secret", 3600, 7200)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	repo.On("ExistsByEmail", "new@example.com").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Member")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Member).ID = 42
	})

	resp, err := svc.Register(&RegisterRequest{
		Email:     "  New@Example.com ",
		Password:  "supersecret",
		FirstName: "New",
		LastName:  "Member",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email, "email is normalized")
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	repo.On("ExistsByEmail", "taken@example.com").Return(true, nil)

	_, err := svc.Register(&RegisterRequest{
		Email:     "taken@example.com",
		Password:  "supersecret",
		FirstName: "A",
		LastName:  "B",
	})

	assert.ErrorIs(t, err, common.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	member := &domain.Member{
		ID:        7,
		Email:     "alice@example.com",
		Password:  hashPassword(t, "correct-horse"),
		FirstName: "Alice",
		LastName:  "Ng",
	}
	repo.On("FindByEmail", "alice@example.com").Return(member, nil)
	repo.On("UpdateLoginTime", uint(7)).Return(nil)

	resp, err := svc.Login("alice@example.com", "correct-horse")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	member := &domain.Member{
		ID:       7,
		Email:    "alice@example.com",
		Password: hashPassword(t, "correct-horse"),
	}
	repo.On("FindByEmail", "alice@example.com").Return(member, nil)

	_, err := svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	repo.On("FindByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	repo := new(mockMemberRepo)
	manager := newTestJWT()
	svc := NewAuthService(repo, manager)

	member := &domain.Member{ID: 7, Email: "alice@example.com", FirstName: "Alice", LastName: "Ng"}
	refresh, err := manager.GenerateRefreshToken(7)
	assert.NoError(t, err)

	repo.On("FindByID", uint(7)).Return(member, nil)

	pair, err := svc.RefreshToken(refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := manager.VerifyToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.MemberID)
}

func TestRefreshToken_Garbage(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	_, err := svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	member := &domain.Member{ID: 7, Password: hashPassword(t, "old-password")}
	repo.On("FindByID", uint(7)).Return(member, nil)
	repo.On("UpdatePassword", uint(7), mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(7, "old-password", "new-password")
	assert.NoError(t, err)

	err = svc.ChangePassword(7, "not-the-old-one", "new-password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestChangePassword_RepoFailure(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	member := &domain.Member{ID: 7, Password: hashPassword(t, "old-password")}
	repo.On("FindByID", uint(7)).Return(member, nil)
	repo.On("UpdatePassword", uint(7), mock.AnythingOfType("string")).Return(errors.New("db down"))

	err := svc.ChangePassword(7, "old-password", "new-password")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	repo := new(mockMemberRepo)
	svc := NewAuthService(repo, newTestJWT())

	member := &domain.Member{ID: 7, Email: "alice@example.com", FirstName: "Alice", LastName: "Ng"}
	repo.On("FindByID", uint(7)).Return(member, nil)
	repo.On("FindByID", uint(8)).Return(nil, gorm.ErrRecordNotFound)

	me, err := svc.Me(7)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = svc.Me(8)
	assert.ErrorIs(t, err, common.ErrMemberNotFound)
}
