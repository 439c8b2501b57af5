package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/auth"
	"hungyeu/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
}

func newTestAuthService(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository, verifyRepo *MockVerificationTokenRepository, mailer *fakeMailer) AuthService {
	return NewAuthService(userRepo, tokenRepo, verifyRepo, mailer, testConfig())
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	verifyRepo := new(MockVerificationTokenRepository)
	mailer := newFakeMailer()

	userRepo.On("FindByUsername", "newuser").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	verifyRepo.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 24*time.Hour).Return(nil)

	svc := newTestAuthService(userRepo, tokenRepo, verifyRepo, mailer)

	user, err := svc.Register("newuser", "password123", "new@example.com", "New User")

	assert.NoError(t, err)
	assert.Equal(t, "newuser", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.EmailVerified)

	calls := mailer.calls()
	assert.Len(t, calls, 1)
	assert.Equal(t, "verification", calls[0].Kind)
	assert.Equal(t, "new@example.com", calls[0].To)

	userRepo.AssertExpectations(t)
	verifyRepo.AssertExpectations(t)
}

func TestRegister_NoTokenStoreSkipsVerificationEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	verifyRepo := new(MockVerificationTokenRepository)
	mailer := newFakeMailer()

	userRepo.On("FindByUsername", "newuser").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)
	verifyRepo.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 24*time.Hour).
		Return(repository.ErrTokenStoreUnavailable)

	svc := newTestAuthService(userRepo, tokenRepo, verifyRepo, mailer)

	// registration still succeeds, but no dead verification link goes out
	user, err := svc.Register("newuser", "password123", "new@example.com", "New User")

	assert.NoError(t, err)
	assert.Equal(t, "newuser", user.Username)
	assert.Empty(t, mailer.calls())
}

func TestRegister_UsernameInUse(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := newFakeMailer()

	userRepo.On("FindByUsername", "taken").Return(&models.User{Username: "taken"}, nil)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), mailer)

	_, err := svc.Register("taken", "password123", "x@example.com", "X")

	assert.ErrorIs(t, err, ErrNameInUse)
	assert.Empty(t, mailer.calls())
}

func TestRegister_EmailInUse(t *testing.T) {
	userRepo := new(MockUserRepository)

	userRepo.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "dup@example.com").Return(&models.User{Email: "dup@example.com"}, nil)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), newFakeMailer())

	_, err := svc.Register("fresh", "password123", "dup@example.com", "X")

	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	hashed, _ := auth.HashPassword("correct-horse")
	user := &models.User{
		ID:       "user-1",
		Username: "reader",
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
	}

	userRepo.On("FindByUsername", "reader").Return(user, nil)
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(userRepo, tokenRepo, new(MockVerificationTokenRepository), newFakeMailer())

	accessToken, refreshToken, got, err := svc.Login("reader", "correct-horse")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "user-1", got.ID)
	assert.NotNil(t, got.LastLogin)

	// issued token must validate and carry identity
	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)

	hashed, _ := auth.HashPassword("right")
	userRepo.On("FindByUsername", "reader").Return(&models.User{
		Username: "reader", Password: hashed, IsActive: true,
	}, nil)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), newFakeMailer())

	_, _, _, err := svc.Login("reader", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ByEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	hashed, _ := auth.HashPassword("correct-horse")
	user := &models.User{
		ID:       "user-1",
		Username: "reader",
		Email:    "reader@example.com",
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
	}

	userRepo.On("FindByUsername", "reader@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "reader@example.com").Return(user, nil)
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(userRepo, tokenRepo, new(MockVerificationTokenRepository), newFakeMailer())

	_, _, got, err := svc.Login("reader@example.com", "correct-horse")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), newFakeMailer())

	_, _, _, err := svc.Login("ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	userRepo := new(MockUserRepository)

	hashed, _ := auth.HashPassword("secret123")
	userRepo.On("FindByUsername", "banned").Return(&models.User{
		Username: "banned", Password: hashed, IsActive: false,
	}, nil)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), newFakeMailer())

	_, _, _, err := svc.Login("banned", "secret123")

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	tokenRepo.On("FindByToken", "stale").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokenRepo.On("Delete", "rt-1").Return(nil)

	svc := newTestAuthService(userRepo, tokenRepo, new(MockVerificationTokenRepository), newFakeMailer())

	_, err := svc.RefreshAccessToken("stale")

	assert.Error(t, err)
	tokenRepo.AssertCalled(t, "Delete", "rt-1")
}

func TestVerifyEmail_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	verifyRepo := new(MockVerificationTokenRepository)
	mailer := newFakeMailer()

	verifyRepo.On("Consume", mock.Anything, "tok-123").Return("user-1", nil)
	userRepo.On("SetEmailVerified", mock.Anything, "user-1").Return(nil)
	userRepo.On("FindByID", "user-1").Return(&models.User{
		ID: "user-1", Email: "v@example.com", DisplayName: "V",
	}, nil)

	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), verifyRepo, mailer)

	err := svc.VerifyEmail(context.Background(), "tok-123")

	assert.NoError(t, err)
	calls := mailer.calls()
	assert.Len(t, calls, 1)
	assert.Equal(t, "welcome", calls[0].Kind)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockVerificationTokenRepository), newFakeMailer())

	_, err := svc.ValidateToken("not-a-jwt")

	assert.Error(t, err)
}
