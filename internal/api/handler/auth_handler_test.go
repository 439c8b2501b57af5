package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/service"
	"hungyeu/internal/config"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password, email, displayName string) (*models.User, error) {
	args := m.Called(username, password, email, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func testAuthHandler(svc *MockAuthService) *AuthHandler {
	cfg := &config.Config{AccessTokenTTL: 15 * time.Minute}
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewAuthHandler(svc, cfg, logger)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Success(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.POST("/register", h.Register)

	mockSvc.On("Register", "testuser", "password123", "test@example.com", "Test User").
		Return(&models.User{ID: "user-123", Username: "testuser", Email: "test@example.com"}, nil)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Username:    "testuser",
		Password:    "password123",
		Email:       "test@example.com",
		DisplayName: "Test User",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-123", response["user_id"])

	mockSvc.AssertExpectations(t)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.POST("/register", h.Register)

	mockSvc.On("Register", "taken", "password123", "test@example.com", "Test User").
		Return(nil, service.ErrNameInUse)

	w := postJSON(router, "/register", dto.RegisterRequest{
		Username:    "taken",
		Password:    "password123",
		Email:       "test@example.com",
		DisplayName: "Test User",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_BadPayload(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.POST("/register", h.Register)

	// missing email and too-short password
	w := postJSON(router, "/register", map[string]string{
		"username": "x",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginHandler_Success(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.POST("/login", h.Login)

	mockSvc.On("Login", "reader", "secret123").Return("access-jwt", "refresh-opaque", &models.User{
		ID: "user-1", Username: "reader", Role: models.RoleUser,
	}, nil)

	w := postJSON(router, "/login", dto.LoginRequest{Username: "reader", Password: "secret123"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "access-jwt", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 900, resp.ExpiresIn)
	assert.Equal(t, models.RoleUser, resp.Role)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.POST("/login", h.Login)

	mockSvc.On("Login", "reader", "wrong").Return("", "", nil, service.ErrInvalidCredentials)

	w := postJSON(router, "/login", dto.LoginRequest{Username: "reader", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyEmailHandler_ByQuery(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.GET("/verify-email", h.VerifyEmailByQuery)

	mockSvc.On("VerifyEmail", mock.Anything, "tok-1").Return(nil)

	req, _ := http.NewRequest("GET", "/verify-email?token=tok-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEmailHandler_InvalidToken(t *testing.T) {
	mockSvc := new(MockAuthService)
	h := testAuthHandler(mockSvc)
	router := setupTestRouter()
	router.GET("/verify-email", h.VerifyEmailByQuery)

	mockSvc.On("VerifyEmail", mock.Anything, "bad").Return(service.ErrInvalidToken)

	req, _ := http.NewRequest("GET", "/verify-email?token=bad", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
