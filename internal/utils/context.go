package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey       ContextKey = "claims"
	UserIDKey       ContextKey = "user_id"
	UserEmailKey    ContextKey = "user_email"
	TenantSchemaKey ContextKey = "tenant_schema"
)

var (
	ErrNoClaimsInContext      = errors.New("no claims found in context")
	ErrNoTenantSchemaInClaims = errors.New("no tenant_schema found in claims")
	ErrInvalidClaimValueType  = errors.New("claim value must be a string")
)

func claimString(c context.Context, key ContextKey, missing error) (string, error) {
	claims, ok := c.Value(ClaimsKey).(jwt.MapClaims)
	if !ok {
		return "", ErrNoClaimsInContext
	}

	value, ok := claims[string(key)]
	if !ok {
		return "", missing
	}

	str, ok := value.(string)
	if !ok {
		return "", ErrInvalidClaimValueType
	}
	return str, nil
}

// GetTenantSchemaFromContext returns the tenant schema the request was
// resolved to by the auth middleware.
func GetTenantSchemaFromContext(c context.Context) (string, error) {
	return claimString(c, TenantSchemaKey, ErrNoTenantSchemaInClaims)
}

// GetUserIDFromContext returns the authenticated user's profile ID, or an
// empty string for an unauthenticated request.
func GetUserIDFromContext(c context.Context) string {
	id, err := claimString(c, UserIDKey, ErrNoClaimsInContext)
	if err != nil {
		return ""
	}
	return id
}
