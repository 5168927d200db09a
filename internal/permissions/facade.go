// Package permissions presents a uniform permission-query surface for a
// user profile by delegating every question to the authorization record of
// the currently active schema. Authentication state lives on the profile in
// the public schema; authorization state lives per tenant, so the same
// profile can be a superuser in one tenant and a stranger in the next.
package permissions

import (
	"context"
	"strings"

	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/schema"
)

// Cached property names, keyed per schema in the profile's TenantCache.
const (
	propIsStaff     = "is_staff"
	propIsSuperuser = "is_superuser"
)

// Facade answers permission queries for one user profile. A missing
// authorization record in the active schema is the ordinary "not a member"
// state and resolves to false or an empty set, never an error.
type Facade struct {
	sc   *schema.Context
	repo repository.PermissionsRepository
	user *domain.UserProfile
}

func NewFacade(sc *schema.Context, repo repository.PermissionsRepository, user *domain.UserProfile) *Facade {
	return &Facade{sc: sc, repo: repo, user: user}
}

// IsStaff reports the staff flag of the active schema's authorization
// record, cached per schema on the profile.
func (f *Facade) IsStaff(ctx context.Context) (bool, error) {
	return f.cachedFlag(ctx, propIsStaff, func(p *domain.UserTenantPermissions) bool {
		return p.IsStaff
	})
}

// IsSuperuser reports the superuser flag of the active schema's
// authorization record, cached per schema on the profile.
func (f *Facade) IsSuperuser(ctx context.Context) (bool, error) {
	return f.cachedFlag(ctx, propIsSuperuser, func(p *domain.UserTenantPermissions) bool {
		return p.IsSuperuser
	})
}

func (f *Facade) cachedFlag(ctx context.Context, prop string, read func(*domain.UserTenantPermissions) bool) (bool, error) {
	value, err := f.user.PermCache().GetOrCompute(f.sc.Current(), prop, func() (interface{}, error) {
		perms, err := f.repo.Get(ctx, f.user.ID)
		if err != nil {
			return nil, err
		}
		if perms == nil {
			return false, nil
		}
		return read(perms), nil
	})
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

// HasTenantPermissions reports whether the profile has an authorization
// record in the active schema at all.
func (f *Facade) HasTenantPermissions(ctx context.Context) (bool, error) {
	perms, err := f.repo.Get(ctx, f.user.ID)
	if err != nil {
		return false, err
	}
	return perms != nil, nil
}

// GetGroupPermissions returns the permissions granted through group
// membership in the active schema.
func (f *Facade) GetGroupPermissions(ctx context.Context) ([]string, error) {
	perms, err := f.repo.Get(ctx, f.user.ID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		return []string{}, nil
	}
	return f.repo.GroupPermissions(ctx, f.user.ID)
}

// GetAllPermissions returns every permission the profile holds in the
// active schema. A superuser holds everything registered there.
func (f *Facade) GetAllPermissions(ctx context.Context) ([]string, error) {
	perms, err := f.repo.Get(ctx, f.user.ID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		return []string{}, nil
	}
	if perms.IsSuperuser {
		return f.repo.AllPermissions(ctx)
	}
	return f.repo.GroupPermissions(ctx, f.user.ID)
}

// HasPerm reports whether the profile holds the "app_label.codename"
// permission in the active schema.
func (f *Facade) HasPerm(ctx context.Context, perm string) (bool, error) {
	all, err := f.GetAllPermissions(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range all {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

// HasPerms reports whether the profile holds every permission in the list.
func (f *Facade) HasPerms(ctx context.Context, permList []string) (bool, error) {
	for _, perm := range permList {
		ok, err := f.HasPerm(ctx, perm)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// HasModulePerms reports whether the profile holds any permission under the
// given app label in the active schema.
func (f *Facade) HasModulePerms(ctx context.Context, appLabel string) (bool, error) {
	all, err := f.GetAllPermissions(ctx)
	if err != nil {
		return false, err
	}
	prefix := appLabel + "."
	for _, p := range all {
		if strings.HasPrefix(p, prefix) {
			return true, nil
		}
	}
	return false, nil
}
