package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Corvia/tenant-users/internal/api/dto"
	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/middleware"
	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/internal/utils"
)

type UserHandlerTestSuite struct {
	suite.Suite
	mockService *MockUserService
	handler     *UserHandler
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, input service.CreateUserInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, user *domain.UserProfile) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, rawPassword string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserService) Permissions(ctx context.Context, userID, schemaName string) (*service.PermissionsSummary, error) {
	args := m.Called(ctx, userID, schemaName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PermissionsSummary), args.Error(1)
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockUserService)
	auth := middleware.NewAuthMiddleware(&config.Config{JWTSecretKey: "test-secret", JWTExpirationHours: 1})
	s.handler = NewUserHandler(s.mockService, auth)
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestCreateUser_Success() {
	profile := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}

	s.mockService.On("CreateUser", mock.Anything, service.CreateUserInput{
		Email:    "user@example.test",
		Password: "s3cret",
	}).Return(profile, nil)

	body, _ := json.Marshal(dto.CreateUserRequest{Email: "user@example.test", Password: "s3cret"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	s.handler.CreateUser(c)

	s.Equal(http.StatusCreated, w.Code)
	var response dto.UserProfileResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("u1", response.ID)
	s.mockService.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestCreateUser_Duplicate() {
	s.mockService.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, service.ErrUserExists)

	body, _ := json.Marshal(dto.CreateUserRequest{Email: "user@example.test"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	s.handler.CreateUser(c)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *UserHandlerTestSuite) TestDeleteUser_Success() {
	profile := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}

	s.mockService.On("GetByEmail", mock.Anything, "user@example.test").Return(profile, nil)
	s.mockService.On("DeleteUser", mock.Anything, profile).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "user@example.test"}}
	c.Request, _ = http.NewRequest(http.MethodDelete, "/users/user@example.test", nil)

	s.handler.DeleteUser(c)

	// A bodyless 204 is never flushed to the recorder when the handler is
	// invoked directly, so read the status off the writer.
	s.Equal(http.StatusNoContent, c.Writer.Status())
	s.mockService.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestDeleteUser_NotFound() {
	s.mockService.On("GetByEmail", mock.Anything, "gone@example.test").Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "gone@example.test"}}
	c.Request, _ = http.NewRequest(http.MethodDelete, "/users/gone@example.test", nil)

	s.handler.DeleteUser(c)

	s.Equal(http.StatusNotFound, w.Code)
	s.mockService.AssertNotCalled(s.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestLogin_Success() {
	profile := &domain.UserProfile{ID: "u1", Email: "user@example.test", IsActive: true}

	s.mockService.On("Authenticate", mock.Anything, "user@example.test", "s3cret").Return(profile, nil)

	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.test", Password: "s3cret", TenantSchema: "acme_1"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	s.handler.Login(c)

	s.Equal(http.StatusOK, w.Code)
	var response dto.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.NotEmpty(response.Token)
	s.Equal("u1", response.User.ID)
}

func (s *UserHandlerTestSuite) TestGetMyPermissions_Success() {
	summary := &service.PermissionsSummary{
		TenantSchema: "acme_1",
		IsMember:     true,
		IsStaff:      true,
		Permissions:  []string{"tenants.view_tenant"},
	}
	s.mockService.On("Permissions", mock.Anything, "u1", "acme_1").Return(summary, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/users/me/permissions", nil)
	c.Set(string(utils.ClaimsKey), jwt.MapClaims{
		"user_id":       "u1",
		"tenant_schema": "acme_1",
	})

	s.handler.GetMyPermissions(c)

	s.Equal(http.StatusOK, w.Code)
	var response dto.PermissionsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("acme_1", response.TenantSchema)
	s.True(response.IsMember)
	s.True(response.IsStaff)
	s.False(response.IsSuperuser)
	s.Equal([]string{"tenants.view_tenant"}, response.Permissions)
}

func (s *UserHandlerTestSuite) TestGetMyPermissions_Unauthenticated() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/users/me/permissions", nil)

	s.handler.GetMyPermissions(c)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Permissions", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestLogin_BadCredentials() {
	s.mockService.On("Authenticate", mock.Anything, "user@example.test", "wrong").
		Return(nil, service.ErrUserNotFound)

	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.test", Password: "wrong"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	s.handler.Login(c)

	s.Equal(http.StatusUnauthorized, w.Code)
}
