package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corvia/tenant-users/internal/api/dto"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/service"
)

//go:generate mockery --name TenantService --output ../mocks
type TenantService interface {
	GetBySchemaName(ctx context.Context, schemaName string) (*domain.Tenant, error)
	GetCurrentTenant(ctx context.Context) (*domain.Tenant, error)
	AddUser(ctx context.Context, tenant *domain.Tenant, user *domain.UserProfile, isSuperuser, isStaff bool) error
	RemoveUser(ctx context.Context, tenant *domain.Tenant, user *domain.UserProfile) error
	TransferOwnership(ctx context.Context, tenant *domain.Tenant, newOwner *domain.UserProfile) error
	DeleteTenant(ctx context.Context, tenant *domain.Tenant) error
}

//go:generate mockery --name ProvisioningService --output ../mocks
type ProvisioningService interface {
	ProvisionTenant(ctx context.Context, input service.ProvisionTenantInput) (*domain.Tenant, *domain.Domain, error)
}

//go:generate mockery --name UserDirectory --output ../mocks
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
}

type TenantHandler struct {
	*BaseHandler
	tenants      TenantService
	provisioning ProvisioningService
	users        UserDirectory
}

func NewTenantHandler(tenants TenantService, provisioning ProvisioningService, users UserDirectory) *TenantHandler {
	return &TenantHandler{BaseHandler: &BaseHandler{}, tenants: tenants, provisioning: provisioning, users: users}
}

// ProvisionTenant godoc
// @Summary Provision a new tenant
// @Description Create a tenant with its schema, primary domain and owner membership
// @Tags tenants
// @Accept json
// @Produce json
// @Param body body dto.ProvisionTenantRequest true "Tenant object"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /tenants [post]
func (h *TenantHandler) ProvisionTenant(c *gin.Context) {
	var req dto.ProvisionTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, primaryDomain, err := h.provisioning.ProvisionTenant(h.RequestCtx(c), service.ProvisionTenantInput{
		TenantName:  req.Name,
		TenantSlug:  req.Slug,
		OwnerEmail:  req.OwnerEmail,
		TenantType:  req.TenantType,
		Description: req.Description,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromTenant(tenant, primaryDomain.Domain))
}

// GetCurrentTenant godoc
// @Summary Get the tenant of the active schema
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /tenants/current [get]
func (h *TenantHandler) GetCurrentTenant(c *gin.Context) {
	tenant, err := h.tenants.GetCurrentTenant(h.RequestCtx(c))
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant, ""))
}

// DeleteTenant godoc
// @Summary Soft-delete a tenant
// @Description Evict members, rename the primary domain and hand the tenant to the public owner
// @Tags tenants
// @Produce json
// @Param schema path string true "Tenant schema name"
// @Success 204
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenants/{schema} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	tenant, ok := h.lookupTenant(c)
	if !ok {
		return
	}

	if err := h.tenants.DeleteTenant(h.RequestCtx(c), tenant); err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddUser godoc
// @Summary Add a user to a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param schema path string true "Tenant schema name"
// @Param body body dto.AddUserRequest true "Membership object"
// @Success 201 {object} dto.UserProfileResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /tenants/{schema}/users [post]
func (h *TenantHandler) AddUser(c *gin.Context) {
	var req dto.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, ok := h.lookupTenant(c)
	if !ok {
		return
	}
	user, ok := h.lookupUser(c, req.Email)
	if !ok {
		return
	}

	if err := h.tenants.AddUser(h.RequestCtx(c), tenant, user, req.IsSuperuser, req.IsStaff); err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromUserProfile(user))
}

// RemoveUser godoc
// @Summary Remove a user from a tenant
// @Tags tenants
// @Produce json
// @Param schema path string true "Tenant schema name"
// @Param email path string true "User email"
// @Success 204
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Router /tenants/{schema}/users/{email} [delete]
func (h *TenantHandler) RemoveUser(c *gin.Context) {
	tenant, ok := h.lookupTenant(c)
	if !ok {
		return
	}
	user, ok := h.lookupUser(c, c.Param("email"))
	if !ok {
		return
	}

	if err := h.tenants.RemoveUser(h.RequestCtx(c), tenant, user); err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// TransferOwnership godoc
// @Summary Transfer tenant ownership to another user
// @Tags tenants
// @Accept json
// @Produce json
// @Param schema path string true "Tenant schema name"
// @Param body body dto.TransferOwnershipRequest true "New owner"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenants/{schema}/transfer [post]
func (h *TenantHandler) TransferOwnership(c *gin.Context) {
	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, ok := h.lookupTenant(c)
	if !ok {
		return
	}
	newOwner, ok := h.lookupUser(c, req.NewOwnerEmail)
	if !ok {
		return
	}

	if err := h.tenants.TransferOwnership(h.RequestCtx(c), tenant, newOwner); err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant, ""))
}

func (h *TenantHandler) lookupTenant(c *gin.Context) (*domain.Tenant, bool) {
	tenant, err := h.tenants.GetBySchemaName(h.RequestCtx(c), c.Param("schema"))
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return nil, false
	}
	if tenant == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: service.ErrTenantNotFound.Error()})
		return nil, false
	}
	return tenant, true
}

func (h *TenantHandler) lookupUser(c *gin.Context, email string) (*domain.UserProfile, bool) {
	user, err := h.users.GetByEmail(h.RequestCtx(c), email)
	if err != nil {
		c.JSON(statusForError(err), dto.Error{Error: err.Error()})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: service.ErrUserNotFound.Error()})
		return nil, false
	}
	return user, true
}
