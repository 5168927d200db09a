package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Corvia/tenant-users/internal/service"
	"github.com/Corvia/tenant-users/internal/utils"
)

type BaseHandler struct{}

// RequestCtx lifts gin's per-request keys into the request context so the
// service layer never sees gin.
func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// statusForError maps service sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrDomainExists),
		errors.Is(err, service.ErrPublicTenantExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidTenantType),
		errors.Is(err, service.ErrNotMember):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInactiveUser),
		errors.Is(err, service.ErrOwnerRemoval),
		errors.Is(err, service.ErrPublicTenantProtected),
		errors.Is(err, service.ErrDeleteNotSupported):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
