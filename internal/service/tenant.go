package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/pkg/logger"
)

// TenantService mutates tenant membership. Every mutation enters the
// tenant's own schema through the schema context -- the authorization table
// it touches only exists there -- and runs as one database transaction, so
// the membership edge in the public schema and the per-tenant authorization
// record always move together.
type TenantService struct {
	repo      repository.Repository
	sc        *schema.Context
	publisher EventPublisher
	cfg       *config.Config
	logger    *logger.Logger
}

func NewTenantService(
	repo repository.Repository,
	sc *schema.Context,
	publisher EventPublisher,
	cfg *config.Config,
	logger *logger.Logger,
) *TenantService {
	return &TenantService{
		repo:      repo,
		sc:        sc,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// AddUser makes user a member of tenant: one authorization record in the
// tenant's schema plus the reciprocal membership edge. Fails with
// ErrAlreadyMember when a membership edge already exists.
func (s *TenantService) AddUser(ctx context.Context, tenant *domain.Tenant, user *domain.UserProfile, isSuperuser, isStaff bool) error {
	return s.sc.RunIn(tenant.SchemaName, func() error {
		return s.repo.Transaction(ctx, func(r repository.Repository) error {
			return s.addUser(ctx, r, tenant, user, isSuperuser, isStaff)
		})
	})
}

// addUser is the transactional body of AddUser. The caller must already be
// inside tenant's schema with r bound to the enclosing transaction.
func (s *TenantService) addUser(ctx context.Context, r repository.Repository, tenant *domain.Tenant, user *domain.UserProfile, isSuperuser, isStaff bool) error {
	member, err := r.Profile().HasMembership(ctx, user.ID, tenant.ID)
	if err != nil {
		return err
	}
	if member {
		return fmt.Errorf("%w: %s", ErrAlreadyMember, user.Email)
	}

	perms := &domain.UserTenantPermissions{
		ProfileID:   user.ID,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}
	if err := r.Permissions().Create(ctx, perms); err != nil {
		return err
	}
	if err := r.Profile().AddMembership(ctx, user.ID, tenant.ID); err != nil {
		return err
	}

	s.publish(ctx, membershipEvent(domain.EventUserAdded, user, tenant))
	return nil
}

// RemoveUser unwinds a membership: clears role assignments, deletes the
// authorization record from the tenant's schema, removes the membership
// edge, and purges the user's cached answers for that schema. The current
// owner cannot be removed; transfer ownership first.
func (s *TenantService) RemoveUser(ctx context.Context, tenant *domain.Tenant, user *domain.UserProfile) error {
	return s.sc.RunIn(tenant.SchemaName, func() error {
		return s.repo.Transaction(ctx, func(r repository.Repository) error {
			return s.removeUser(ctx, r, tenant, user)
		})
	})
}

func (s *TenantService) removeUser(ctx context.Context, r repository.Repository, tenant *domain.Tenant, user *domain.UserProfile) error {
	member, err := r.Profile().HasMembership(ctx, user.ID, tenant.ID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: %s", ErrNotMember, user.Email)
	}
	if user.ID == tenant.OwnerID {
		return fmt.Errorf("%w: %s owns %s", ErrOwnerRemoval, user.Email, tenant.SchemaName)
	}

	perms, err := r.Permissions().Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if perms != nil {
		if err := r.Permissions().ClearGroups(ctx, perms); err != nil {
			return err
		}
		if err := r.Permissions().Delete(ctx, perms); err != nil {
			return err
		}
	}
	if err := r.Profile().RemoveMembership(ctx, user.ID, tenant.ID); err != nil {
		return err
	}

	user.PermCache().InvalidateSchema(tenant.SchemaName)

	s.publish(ctx, membershipEvent(domain.EventUserRemoved, user, tenant))
	return nil
}

// TransferOwnership demotes the current owner to a plain member (their role
// assignments survive, the superuser flag does not), reassigns the owner
// reference, and promotes newOwner to superuser -- adding them as a member
// first if they were not one. An old owner left with no role assignments is
// removed from the tenant entirely. The whole sequence is one transaction.
func (s *TenantService) TransferOwnership(ctx context.Context, tenant *domain.Tenant, newOwner *domain.UserProfile) error {
	return s.sc.RunIn(tenant.SchemaName, func() error {
		return s.repo.Transaction(ctx, func(r repository.Repository) error {
			return s.transferOwnership(ctx, r, tenant, newOwner)
		})
	})
}

func (s *TenantService) transferOwnership(ctx context.Context, r repository.Repository, tenant *domain.Tenant, newOwner *domain.UserProfile) error {
	oldOwner, err := r.Profile().GetByID(ctx, tenant.OwnerID)
	if err != nil {
		return err
	}
	if oldOwner == nil {
		return fmt.Errorf("%w: owner of %s", ErrUserNotFound, tenant.SchemaName)
	}

	oldPerms, err := r.Permissions().Get(ctx, oldOwner.ID)
	if err != nil {
		return err
	}
	if oldPerms != nil {
		oldPerms.IsSuperuser = false
		if err := r.Permissions().Save(ctx, oldPerms); err != nil {
			return err
		}
		oldOwner.PermCache().InvalidateSchema(tenant.SchemaName)
	}

	tenant.OwnerID = newOwner.ID

	// An old owner holding no roles has nothing left in this tenant.
	if oldPerms != nil {
		hasGroups, err := r.Permissions().HasGroups(ctx, oldPerms)
		if err != nil {
			return err
		}
		if !hasGroups {
			if err := s.removeUser(ctx, r, tenant, oldOwner); err != nil {
				return err
			}
		}
	}

	member, err := r.Profile().HasMembership(ctx, newOwner.ID, tenant.ID)
	if err != nil {
		return err
	}
	if member {
		newPerms, err := r.Permissions().Get(ctx, newOwner.ID)
		if err != nil {
			return err
		}
		if newPerms == nil {
			return fmt.Errorf("membership edge without authorization record for %s in %s", newOwner.Email, tenant.SchemaName)
		}
		newPerms.IsSuperuser = true
		if err := r.Permissions().Save(ctx, newPerms); err != nil {
			return err
		}
		newOwner.PermCache().InvalidateSchema(tenant.SchemaName)
	} else {
		if err := s.addUser(ctx, r, tenant, newOwner, true, false); err != nil {
			return err
		}
	}

	return r.Tenant().Save(ctx, tenant)
}

// DeleteTenant retires a tenant without touching its schema or data: every
// non-owner member is removed, the primary domain is rewritten to a retired
// form (freeing the original domain string for reuse), and ownership passes
// to the public tenant's owner. The public tenant itself is never retired.
func (s *TenantService) DeleteTenant(ctx context.Context, tenant *domain.Tenant) error {
	if tenant.SchemaName == s.cfg.PublicSchemaName {
		return ErrPublicTenantProtected
	}

	members, err := s.repo.Profile().ListMembers(ctx, tenant.ID)
	if err != nil {
		return err
	}
	for i := range members {
		if members[i].ID == tenant.OwnerID {
			continue
		}
		if err := s.RemoveUser(ctx, tenant, &members[i]); err != nil {
			return err
		}
	}

	// Retire the primary domain: prefix with the epoch and the former
	// owner so the original value becomes free for a future tenant.
	primary, err := s.repo.Domain().GetPrimaryByTenant(ctx, tenant.ID)
	if err != nil {
		return err
	}
	if primary != nil {
		primary.Domain = fmt.Sprintf("%d-%s-%s", time.Now().Unix(), tenant.OwnerID, primary.Domain)
		if err := s.repo.Domain().Save(ctx, primary); err != nil {
			return err
		}
	}

	publicTenant, err := s.repo.Tenant().GetBySchemaName(ctx, s.cfg.PublicSchemaName)
	if err != nil {
		return err
	}
	if publicTenant == nil {
		return fmt.Errorf("%w: %s", ErrTenantNotFound, s.cfg.PublicSchemaName)
	}
	publicOwner, err := s.repo.Profile().GetByID(ctx, publicTenant.OwnerID)
	if err != nil {
		return err
	}
	if publicOwner == nil {
		return fmt.Errorf("%w: public tenant owner", ErrUserNotFound)
	}

	oldOwner, err := s.repo.Profile().GetByID(ctx, tenant.OwnerID)
	if err != nil {
		return err
	}

	if err := s.TransferOwnership(ctx, tenant, publicOwner); err != nil {
		return err
	}

	// The transfer removes an owner with no roles; one holding roles is
	// still a member and gets removed here.
	if oldOwner != nil {
		member, err := s.repo.Profile().HasMembership(ctx, oldOwner.ID, tenant.ID)
		if err != nil {
			return err
		}
		if member {
			if err := s.RemoveUser(ctx, tenant, oldOwner); err != nil {
				return err
			}
		}
	}

	s.logger.Info("tenant retired",
		zap.String("schema", tenant.SchemaName),
		zap.String("tenant_id", tenant.ID))
	return nil
}

// Delete physically removes a tenant. Only the forced path -- provisioning
// rollback -- is allowed to do this; everything else must go through
// DeleteTenant.
func (s *TenantService) Delete(ctx context.Context, tenant *domain.Tenant, forceDrop bool) error {
	if !forceDrop {
		return ErrDeleteNotSupported
	}

	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if err := r.Domain().DeleteByTenant(ctx, tenant.ID); err != nil {
			return err
		}
		return r.Tenant().Delete(ctx, tenant.ID)
	})
	if err != nil {
		return err
	}

	if tenant.AutoDropSchema {
		if err := s.sc.Engine().DropSchema(ctx, tenant.SchemaName); err != nil {
			return err
		}
	}
	return nil
}

// GetCurrentTenant resolves the tenant row for the currently active schema.
func (s *TenantService) GetCurrentTenant(ctx context.Context) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetBySchemaName(ctx, s.sc.Current())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, s.sc.Current())
	}
	return tenant, nil
}

// GetBySchemaName returns the tenant owning the named schema.
func (s *TenantService) GetBySchemaName(ctx context.Context, schemaName string) (*domain.Tenant, error) {
	return s.repo.Tenant().GetBySchemaName(ctx, schemaName)
}

// publish delivers an event without failing the surrounding mutation: the
// relational writes are the source of truth and the stream is advisory.
func (s *TenantService) publish(ctx context.Context, event domain.TenantUserEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish tenant user event", err,
			zap.String("type", string(event.Type)),
			zap.String("user_id", event.UserID))
	}
}
