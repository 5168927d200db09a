package repository

import (
	"context"

	"github.com/Corvia/tenant-users/internal/domain"
)

// Lookups that can legitimately come up empty return (nil, nil) rather than
// an error: "no record" is ordinary state for membership and authorization
// queries, not a failure.

//go:generate mockery --name UserProfileRepository --output ../mocks
type UserProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	Save(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)

	// Membership edges (user_tenants, public schema).
	HasMembership(ctx context.Context, profileID, tenantID string) (bool, error)
	AddMembership(ctx context.Context, profileID, tenantID string) error
	RemoveMembership(ctx context.Context, profileID, tenantID string) error
	ListTenants(ctx context.Context, profileID string) ([]domain.Tenant, error)
	ListMembers(ctx context.Context, tenantID string) ([]domain.UserProfile, error)
}

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	Save(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySchemaName(ctx context.Context, schemaName string) (*domain.Tenant, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name DomainRepository --output ../mocks
type DomainRepository interface {
	Create(ctx context.Context, d *domain.Domain) error
	Save(ctx context.Context, d *domain.Domain) error
	ExistsByDomain(ctx context.Context, domainName string) (bool, error)
	GetPrimaryByTenant(ctx context.Context, tenantID string) (*domain.Domain, error)
	DeleteByTenant(ctx context.Context, tenantID string) error
}

// PermissionsRepository reads and writes the user_tenant_permissions table
// of whichever schema is currently active. Callers must enter the target
// tenant's schema (schema.Context.RunIn) before touching it; the record for
// the same profile in another schema is a different row with its own
// schema-local primary key.
//
//go:generate mockery --name PermissionsRepository --output ../mocks
type PermissionsRepository interface {
	Get(ctx context.Context, profileID string) (*domain.UserTenantPermissions, error)
	Create(ctx context.Context, perms *domain.UserTenantPermissions) error
	Save(ctx context.Context, perms *domain.UserTenantPermissions) error
	Delete(ctx context.Context, perms *domain.UserTenantPermissions) error

	ClearGroups(ctx context.Context, perms *domain.UserTenantPermissions) error
	HasGroups(ctx context.Context, perms *domain.UserTenantPermissions) (bool, error)
	// GroupPermissions returns the "app_label.codename" strings granted to
	// the profile through its groups in the active schema.
	GroupPermissions(ctx context.Context, profileID string) ([]string, error)
	// AllPermissions returns every permission registered in the active
	// schema (the superuser set).
	AllPermissions(ctx context.Context) ([]string, error)
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Profile() UserProfileRepository
	Tenant() TenantRepository
	Domain() DomainRepository
	Permissions() PermissionsRepository

	// Transaction runs fn against a Repository bound to one database
	// transaction; fn's error rolls everything back.
	Transaction(ctx context.Context, fn func(Repository) error) error
}
