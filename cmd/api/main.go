package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Corvia/tenant-users/internal/api"
	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/middleware"
	"github.com/Corvia/tenant-users/internal/repository/postgres"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/internal/service/pubsub"
	"github.com/Corvia/tenant-users/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	db, err := config.NewDatabase()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDatabase(db)

	appLogger.Info("Database connection established")

	engine, err := schema.NewPostgresEngine(db, cfg.PublicSchemaName)
	if err != nil {
		appLogger.Fatal("Failed to initialize schema engine", err)
	}
	defer engine.Close()
	schemaCtx := schema.NewContext(engine)

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Initialize Redis pub/sub
	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)

	// Repositories run on the engine's pinned connection so their queries
	// see the schema the active Context selected.
	repo := postgres.NewRepository(engine.DB())

	// Initialize services
	tenantService := service.NewTenantService(repo, schemaCtx, redisPubSub, cfg, appLogger)
	provisioningService := service.NewProvisioningService(repo, schemaCtx, tenantService, cfg, appLogger)
	userService := service.NewUserService(repo, schemaCtx, tenantService, redisPubSub, cfg, appLogger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	accessMiddleware := middleware.NewTenantAccessMiddleware(repo, cfg, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)

	// Initialize server
	server := api.NewServer(
		tenantService,
		provisioningService,
		userService,
		authMiddleware,
		accessMiddleware,
		rateLimitMiddleware,
		cfg.GlobalRateLimit,
		appLogger,
		redisPubSub,
	)

	// Start WebSocket hub
	server.StartWebSocketHub()
	defer server.StopWebSocketHub()

	// Initialize router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
