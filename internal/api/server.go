package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Corvia/tenant-users/internal/middleware"
	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/internal/service/pubsub"
	"github.com/Corvia/tenant-users/pkg/logger"
)

type Server struct {
	tenant    *TenantHandler
	user      *UserHandler
	websocket *WebSocketHandler
	auth      *middleware.AuthMiddleware
	access    *middleware.TenantAccessMiddleware
	rateLimit *middleware.RateLimitMiddleware
	config    serverConfig
}

type serverConfig struct {
	globalRateLimit int
}

func NewServer(
	tenantService *service.TenantService,
	provisioningService *service.ProvisioningService,
	userService *service.UserService,
	auth *middleware.AuthMiddleware,
	access *middleware.TenantAccessMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	globalRateLimit int,
	logger *logger.Logger,
	pubsub *pubsub.RedisPubSub,
) *Server {
	return &Server{
		tenant:    NewTenantHandler(tenantService, provisioningService, userService),
		user:      NewUserHandler(userService, auth),
		websocket: NewWebSocketHandler(logger, pubsub),
		auth:      auth,
		access:    access,
		rateLimit: rateLimit,
		config:    serverConfig{globalRateLimit: globalRateLimit},
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.rateLimit.GlobalRateLimit(s.config.globalRateLimit))
	api.Use(s.auth.JWTAuth())
	api.Use(s.access.EnforceAccess())

	api.POST("/auth/login", s.user.Login)

	{
		users := api.Group("/users", s.auth.RequireAuth(), s.rateLimit.TenantRateLimit())
		{
			users.POST("", s.user.CreateUser)
			users.GET("/me/permissions", s.user.GetMyPermissions)
			users.DELETE("/:email", s.user.DeleteUser)
		}

		tenants := api.Group("/tenants", s.auth.RequireAuth(), s.rateLimit.TenantRateLimit())
		{
			tenants.POST("", s.tenant.ProvisionTenant)
			tenants.GET("/current", s.tenant.GetCurrentTenant)
			tenants.DELETE("/:schema", s.tenant.DeleteTenant)
			tenants.POST("/:schema/users", s.tenant.AddUser)
			tenants.DELETE("/:schema/users/:email", s.tenant.RemoveUser)
			tenants.POST("/:schema/transfer", s.tenant.TransferOwnership)
			tenants.GET("/events/stream", s.websocket.HandleWebSocket)
		}
	}
}

// StartWebSocketHub starts the hub that fans events out to stream clients
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// StopWebSocketHub shuts the hub down and closes its subscriptions
func (s *Server) StopWebSocketHub() {
	s.websocket.Stop()
}
