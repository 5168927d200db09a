package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Corvia/tenant-users/internal/domain"
)

// PermissionsRepository operates on the user_tenant_permissions table of the
// schema that is active on the shared connection. It is the caller's job to
// have entered the right tenant schema first.
type PermissionsRepository struct {
	db *gorm.DB
}

func NewPermissionsRepository(db *gorm.DB) *PermissionsRepository {
	return &PermissionsRepository{db: db}
}

func (r *PermissionsRepository) Get(ctx context.Context, profileID string) (*domain.UserTenantPermissions, error) {
	var perms domain.UserTenantPermissions
	err := r.db.WithContext(ctx).First(&perms, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perms, nil
}

func (r *PermissionsRepository) Create(ctx context.Context, perms *domain.UserTenantPermissions) error {
	return r.db.WithContext(ctx).Create(perms).Error
}

func (r *PermissionsRepository) Save(ctx context.Context, perms *domain.UserTenantPermissions) error {
	return r.db.WithContext(ctx).Save(perms).Error
}

func (r *PermissionsRepository) Delete(ctx context.Context, perms *domain.UserTenantPermissions) error {
	return r.db.WithContext(ctx).Delete(perms).Error
}

func (r *PermissionsRepository) ClearGroups(ctx context.Context, perms *domain.UserTenantPermissions) error {
	return r.db.WithContext(ctx).Model(perms).Association("Groups").Clear()
}

func (r *PermissionsRepository) HasGroups(ctx context.Context, perms *domain.UserTenantPermissions) (bool, error) {
	count := r.db.WithContext(ctx).Model(perms).Association("Groups").Count()
	return count > 0, nil
}

func (r *PermissionsRepository) GroupPermissions(ctx context.Context, profileID string) ([]string, error) {
	var perms []domain.Permission
	err := r.db.WithContext(ctx).
		Distinct("permissions.*").
		Model(&domain.Permission{}).
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Joins("JOIN user_tenant_permission_groups utpg ON utpg.group_id = group_permissions.group_id").
		Joins("JOIN user_tenant_permissions utp ON utp.id = utpg.user_tenant_permissions_id").
		Where("utp.profile_id = ?", profileID).
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return permissionStrings(perms), nil
}

func (r *PermissionsRepository) AllPermissions(ctx context.Context) ([]string, error) {
	var perms []domain.Permission
	if err := r.db.WithContext(ctx).Find(&perms).Error; err != nil {
		return nil, err
	}
	return permissionStrings(perms), nil
}

func permissionStrings(perms []domain.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = p.String()
	}
	return out
}
