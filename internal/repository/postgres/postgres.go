package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Corvia/tenant-users/internal/repository"
)

// Schema scoping note: all repositories here run against the schema engine's
// pinned connection (schema.PostgresEngine.DB), whose search_path is managed
// by internal/schema. They never qualify table names themselves; the active
// schema decides which user_tenant_permissions table a query hits, while the
// catalog tables stay reachable through the public fallback on the
// search_path.
type postgresRepository struct {
	db          *gorm.DB
	profileRepo repository.UserProfileRepository
	tenantRepo  repository.TenantRepository
	domainRepo  repository.DomainRepository
	permsRepo   repository.PermissionsRepository
}

func NewRepository(db *gorm.DB) repository.Repository {
	return &postgresRepository{
		db:          db,
		profileRepo: NewUserProfileRepository(db),
		tenantRepo:  NewTenantRepository(db),
		domainRepo:  NewDomainRepository(db),
		permsRepo:   NewPermissionsRepository(db),
	}
}

func (r *postgresRepository) Profile() repository.UserProfileRepository {
	return r.profileRepo
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) Domain() repository.DomainRepository {
	return r.domainRepo
}

func (r *postgresRepository) Permissions() repository.PermissionsRepository {
	return r.permsRepo
}

func (r *postgresRepository) Transaction(ctx context.Context, fn func(repository.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
