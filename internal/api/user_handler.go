package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corvia/tenant-users/internal/api/dto"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/middleware"
	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/internal/utils"
)

//go:generate mockery --name UserService --output ../mocks
type UserService interface {
	CreateUser(ctx context.Context, input service.CreateUserInput) (*domain.UserProfile, error)
	DeleteUser(ctx context.Context, user *domain.UserProfile) error
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	Authenticate(ctx context.Context, email, rawPassword string) (*domain.UserProfile, error)
	Permissions(ctx context.Context, userID, schemaName string) (*service.PermissionsSummary, error)
}

type UserHandler struct {
	*BaseHandler
	service UserService
	auth    *middleware.AuthMiddleware
}

func NewUserHandler(service UserService, auth *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{BaseHandler: &BaseHandler{}, service: service, auth: auth}
}

// CreateUser godoc
// @Summary Create a user
// @Description Create an identity and link it to the public tenant
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "User object"
// @Success 201 {object} dto.UserProfileResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	user, err := h.service.CreateUser(h.RequestCtx(c), service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		IsStaff:  req.IsStaff,
	})
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromUserProfile(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove the user from every tenant, delete the tenants they own and deactivate the identity
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 204
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /users/{email} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.service.GetByEmail(h.RequestCtx(c), c.Param("email"))
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: service.ErrUserNotFound.Error()})
		return
	}

	if err := h.service.DeleteUser(h.RequestCtx(c), user); err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMyPermissions godoc
// @Summary Authorization state of the caller in their tenant
// @Description Report membership, staff/superuser flags, and the full permission set the token's tenant schema grants the caller
// @Tags users
// @Produce json
// @Success 200 {object} dto.PermissionsResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /users/me/permissions [get]
func (h *UserHandler) GetMyPermissions(c *gin.Context) {
	ctx := h.RequestCtx(c)
	userID := utils.GetUserIDFromContext(ctx)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Authentication required"})
		return
	}

	// An anonymous-tenant token (no tenant_schema claim) gets the public
	// schema's answer.
	schemaName, _ := utils.GetTenantSchemaFromContext(ctx)

	summary, err := h.service.Permissions(ctx, userID, schemaName)
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromPermissions(summary))
}

// Login godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.Error
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	user, err := h.service.Authenticate(h.RequestCtx(c), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, req.TenantSchema)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  *dto.FromUserProfile(user),
	})
}
