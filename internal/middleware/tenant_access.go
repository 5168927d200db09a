package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/utils"
	"github.com/Corvia/tenant-users/pkg/logger"
)

// TenantAccessMiddleware blocks authenticated users from reaching tenants
// they are not a member of. Anonymous requests pass through untouched so the
// login flow stays reachable.
type TenantAccessMiddleware struct {
	repo   repository.Repository
	config *config.Config
	logger *logger.Logger
}

func NewTenantAccessMiddleware(repo repository.Repository, config *config.Config, logger *logger.Logger) *TenantAccessMiddleware {
	return &TenantAccessMiddleware{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// EnforceAccess denies with 404 rather than 403 so probing requests cannot
// distinguish "tenant exists but you are not a member" from "no such tenant".
func (m *TenantAccessMiddleware) EnforceAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Value(string(utils.UserIDKey)).(string)
		if !ok || userID == "" {
			c.Next()
			return
		}

		schemaName, ok := c.Value(string(utils.TenantSchemaKey)).(string)
		if !ok || schemaName == "" || schemaName == m.config.PublicSchemaName {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		profile, err := m.repo.Profile().GetByID(ctx, userID)
		if err != nil {
			m.logger.Errorf("access check: load profile %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if profile == nil || !profile.IsActive {
			m.deny(c)
			return
		}

		tenant, err := m.repo.Tenant().GetBySchemaName(ctx, schemaName)
		if err != nil {
			m.logger.Errorf("access check: load tenant %s: %v", schemaName, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if tenant == nil {
			m.deny(c)
			return
		}

		member, err := m.repo.Profile().HasMembership(ctx, profile.ID, tenant.ID)
		if err != nil {
			m.logger.Errorf("access check: membership %s/%s: %v", profile.ID, tenant.ID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !member {
			m.deny(c)
			return
		}

		c.Next()
	}
}

func (m *TenantAccessMiddleware) deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": m.config.AccessDeniedMessage})
}
