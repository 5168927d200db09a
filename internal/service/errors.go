package service

import "errors"

var (
	// Identity errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("active user already exists")
	ErrInactiveUser  = errors.New("inactive user")
	ErrEmailRequired = errors.New("email address is required")

	// Membership errors
	ErrAlreadyMember = errors.New("user already added to tenant")
	ErrNotMember     = errors.New("user is not a member of tenant")
	// ErrOwnerRemoval covers both removing a tenant's current owner and
	// deleting the public tenant's owner; ownership must move first.
	ErrOwnerRemoval = errors.New("cannot remove the current owner")

	// Tenant errors
	ErrTenantNotFound        = errors.New("tenant not found")
	ErrDomainExists          = errors.New("tenant domain already exists")
	ErrPublicTenantExists    = errors.New("public tenant already exists")
	ErrPublicTenantProtected = errors.New("cannot delete the public tenant")
	ErrInvalidTenantType     = errors.New("invalid tenant type")
	// ErrDeleteNotSupported guards the direct-delete path; tenants retire
	// through DeleteTenant, and a real schema drop happens only on the
	// forced rollback path.
	ErrDeleteNotSupported = errors.New("direct delete not supported, use DeleteTenant")

	// ErrPublicSchemaRequired is returned when identity creation is
	// attempted while a tenant schema is active.
	ErrPublicSchemaRequired = errors.New("operation requires the public schema")
)
