package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/utils"
	"github.com/Corvia/tenant-users/pkg/logger"
)

const rateWindow = time.Minute

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit throttles authenticated traffic per tenant schema.
// Anonymous requests fall back to the client IP so login endpoints still get
// a ceiling.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, tenantKey(c), m.tenantLimit())
	}
}

// tenantKey picks the throttling bucket. The auth middleware stores claims
// with gin's own key store, so the schema is read back through the gin
// context, not the request context.
func tenantKey(c *gin.Context) string {
	if value, ok := c.Get(string(utils.TenantSchemaKey)); ok {
		if schema, ok := value.(string); ok && schema != "" {
			return fmt.Sprintf("rate_limit:tenant:%s", schema)
		}
	}
	return fmt.Sprintf("rate_limit:anon:%s", c.ClientIP())
}

// GlobalRateLimit throttles all traffic by client IP.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, fmt.Sprintf("rate_limit:global:%s", c.ClientIP()), limit)
	}
}

func (m *RateLimitMiddleware) enforce(c *gin.Context, key string, limit int) {
	ctx := c.Request.Context()

	current, err := m.redis.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		// Fail open: a broken limiter must not take the API down with it.
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	reset := time.Now().Add(rateWindow).Unix()

	if current >= limit {
		setRateHeaders(c, limit, 0, reset)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded",
			"limit": limit,
			"reset": reset,
		})
		c.Abort()
		return
	}

	pipe := m.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	remaining := limit - (current + 1)
	if remaining < 0 {
		remaining = 0
	}
	setRateHeaders(c, limit, remaining, reset)

	c.Next()
}

func (m *RateLimitMiddleware) tenantLimit() int {
	if m.config.DefaultRateLimit > 0 {
		return m.config.DefaultRateLimit
	}
	return 1000
}

func setRateHeaders(c *gin.Context, limit, remaining int, reset int64) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
}
