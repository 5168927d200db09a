package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/permissions"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/pkg/logger"
	"github.com/Corvia/tenant-users/pkg/password"
)

// UserService manages identity records. Identities live only in the public
// schema, so creation refuses to run while any tenant schema is active, and
// deletion fans out across every tenant the user belongs to before flipping
// the active flag.
type UserService struct {
	repo      repository.Repository
	sc        *schema.Context
	tenants   *TenantService
	publisher EventPublisher
	cfg       *config.Config
	logger    *logger.Logger
}

func NewUserService(
	repo repository.Repository,
	sc *schema.Context,
	tenants *TenantService,
	publisher EventPublisher,
	cfg *config.Config,
	logger *logger.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		sc:        sc,
		tenants:   tenants,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

type CreateUserInput struct {
	Email    string
	Password string
	IsStaff  bool
}

// CreateUser creates (or reactivates) an identity and links it to the
// public tenant with no elevated flags unless IsStaff is set.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.UserProfile, error) {
	return s.createUser(ctx, input.Email, input.Password, input.IsStaff, false, false)
}

// CreateSuperuser creates an identity with staff, superuser, and verified
// all forced on.
func (s *UserService) CreateSuperuser(ctx context.Context, email, pwd string) (*domain.UserProfile, error) {
	return s.createUser(ctx, email, pwd, true, true, true)
}

func (s *UserService) createUser(ctx context.Context, email, rawPassword string, isStaff, isSuperuser, isVerified bool) (*domain.UserProfile, error) {
	// Identity rows exist only in the public schema; creating one from
	// inside a tenant context would be writing authentication data into
	// the wrong relational space.
	if current := s.sc.Current(); current != s.cfg.PublicSchemaName {
		return nil, fmt.Errorf("%w: active schema is %q", ErrPublicSchemaRequired, current)
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	email = domain.NormalizeEmail(email)

	var profile *domain.UserProfile
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		existing, err := r.Profile().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsActive {
			return fmt.Errorf("%w: %s", ErrUserExists, email)
		}

		// An inactive profile with this email is reactivated instead of
		// duplicated: its history stays attached, though none of it is
		// reachable until the user is re-invited to a tenant.
		if existing != nil {
			profile = existing
		} else {
			profile = &domain.UserProfile{}
		}

		profile.Email = email
		profile.IsActive = true
		profile.IsVerified = isVerified
		if rawPassword == "" {
			profile.Password = password.MakeUnusable()
		} else {
			hashed, err := password.Hash(rawPassword)
			if err != nil {
				return err
			}
			profile.Password = hashed
		}

		if existing != nil {
			if err := r.Profile().Save(ctx, profile); err != nil {
				return err
			}
		} else {
			if err := r.Profile().Create(ctx, profile); err != nil {
				return err
			}
		}

		publicTenant, err := r.Tenant().GetBySchemaName(ctx, s.cfg.PublicSchemaName)
		if err != nil {
			return err
		}
		if publicTenant == nil {
			return fmt.Errorf("%w: %s (bootstrap the public tenant first)", ErrTenantNotFound, s.cfg.PublicSchemaName)
		}

		// Link to the public tenant with no flags; the public-schema
		// authorization record this creates is promoted afterwards when
		// elevated flags were requested.
		if err := s.tenants.addUser(ctx, r, publicTenant, profile, false, false); err != nil {
			return err
		}

		if isStaff || isSuperuser {
			perms, err := r.Permissions().Get(ctx, profile.ID)
			if err != nil {
				return err
			}
			if perms == nil {
				return fmt.Errorf("public authorization record missing for %s", profile.Email)
			}
			perms.IsStaff = isStaff
			perms.IsSuperuser = isSuperuser
			if err := r.Permissions().Save(ctx, perms); err != nil {
				return err
			}
		}

		s.publish(ctx, identityEvent(domain.EventUserCreated, profile))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("email", profile.Email))
	return profile, nil
}

// DeleteUser deactivates an identity after unwinding every tenant
// membership: tenants the user owns are retired, other memberships are
// removed directly. The public tenant's owner can never be deleted this
// way. Authorization records carry schema-local primary keys, so each
// tenant's record is located and removed inside that tenant's own schema --
// nothing here assumes any cross-schema key equality.
func (s *UserService) DeleteUser(ctx context.Context, user *domain.UserProfile) error {
	publicTenant, err := s.repo.Tenant().GetBySchemaName(ctx, s.cfg.PublicSchemaName)
	if err != nil {
		return err
	}
	if publicTenant != nil && user.ID == publicTenant.OwnerID {
		return fmt.Errorf("%w: %s owns the public tenant", ErrOwnerRemoval, user.Email)
	}

	tenants, err := s.repo.Profile().ListTenants(ctx, user.ID)
	if err != nil {
		return err
	}
	for i := range tenants {
		tenant := &tenants[i]
		if tenant.OwnerID == user.ID {
			// Retiring the tenant removes this user along with every
			// other member.
			if err := s.tenants.DeleteTenant(ctx, tenant); err != nil {
				return err
			}
		} else {
			if err := s.tenants.RemoveUser(ctx, tenant, user); err != nil {
				return err
			}
		}
	}

	user.IsActive = false
	if err := s.repo.Profile().Save(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, identityEvent(domain.EventUserDeleted, user))
	s.logger.Info("user deleted", zap.String("email", user.Email))
	return nil
}

// GetByEmail looks up an identity by its normalized email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return s.repo.Profile().GetByEmail(ctx, domain.NormalizeEmail(email))
}

// Authenticate verifies the password for an active, usable identity.
func (s *UserService) Authenticate(ctx context.Context, email, rawPassword string) (*domain.UserProfile, error) {
	profile, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if !password.Verify(profile.Password, rawPassword) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return profile, nil
}

// PermissionsSummary is one profile's authorization picture inside a single
// tenant schema.
type PermissionsSummary struct {
	TenantSchema string
	IsMember     bool
	IsStaff      bool
	IsSuperuser  bool
	Permissions  []string
}

// Permissions answers the authorization questions for a profile in the named
// tenant schema through the permissions facade. A missing authorization
// record is the ordinary non-member state, not an error. An empty schema
// name means the public schema.
func (s *UserService) Permissions(ctx context.Context, userID, schemaName string) (*PermissionsSummary, error) {
	profile, err := s.repo.Profile().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if schemaName == "" {
		schemaName = s.cfg.PublicSchemaName
	}

	facade := permissions.NewFacade(s.sc, s.repo.Permissions(), profile)
	summary := &PermissionsSummary{TenantSchema: schemaName, Permissions: []string{}}
	err = s.sc.RunIn(schemaName, func() error {
		var err error
		if summary.IsMember, err = facade.HasTenantPermissions(ctx); err != nil {
			return err
		}
		if !summary.IsMember {
			return nil
		}
		if summary.IsStaff, err = facade.IsStaff(ctx); err != nil {
			return err
		}
		if summary.IsSuperuser, err = facade.IsSuperuser(ctx); err != nil {
			return err
		}
		summary.Permissions, err = facade.GetAllPermissions(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *UserService) publish(ctx context.Context, event domain.TenantUserEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish tenant user event", err,
			zap.String("type", string(event.Type)),
			zap.String("user_id", event.UserID))
	}
}
