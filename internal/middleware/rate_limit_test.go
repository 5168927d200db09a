package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corvia/tenant-users/internal/config"
)

// An authenticated request must be throttled under its tenant schema, not
// under the anonymous per-IP bucket. The claims ride on gin's key store, so
// the key derivation has to read them from there.
func TestTenantKeyUsesTokenSchema(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewAuthMiddleware(&config.Config{JWTSecretKey: "test-secret", JWTExpirationHours: 1})

	var key string
	router := gin.New()
	router.GET("/", auth.JWTAuth(), func(c *gin.Context) {
		key = tenantKey(c)
		c.Status(http.StatusOK)
	})

	token, err := auth.GenerateToken("u1", "user@example.test", "acme_1")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rate_limit:tenant:acme_1", key)
}

func TestTenantKeyFallsBackToClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var key string
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		key = tenantKey(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:55555"
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rate_limit:anon:10.1.2.3", key)
}
