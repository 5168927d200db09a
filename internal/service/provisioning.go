package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Corvia/tenant-users/internal/config"
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/repository"
	"github.com/Corvia/tenant-users/internal/schema"
	"github.com/Corvia/tenant-users/pkg/logger"
	"github.com/Corvia/tenant-users/pkg/password"
)

// ProvisioningService orchestrates tenant creation: schema allocation,
// domain registration, and the owner's initial membership, as one atomic
// unit. A failure after the schema has been allocated rolls the rows back
// and drops the schema again, leaving no residue.
type ProvisioningService struct {
	repo    repository.Repository
	sc      *schema.Context
	tenants *TenantService
	cfg     *config.Config
	logger  *logger.Logger
}

func NewProvisioningService(
	repo repository.Repository,
	sc *schema.Context,
	tenants *TenantService,
	cfg *config.Config,
	logger *logger.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		repo:    repo,
		sc:      sc,
		tenants: tenants,
		cfg:     cfg,
		logger:  logger,
	}
}

type ProvisionTenantInput struct {
	TenantName  string
	TenantSlug  string
	OwnerEmail  string
	IsStaff     bool
	IsSuperuser bool
	// TenantType is required when multi-type tenancy is enabled.
	TenantType string
	// SchemaName overrides the generated "{slug}_{unix}" name. Generated
	// names are unique per provisioning attempt, so retired tenants never
	// block a slug from being reused.
	SchemaName  string
	Description string
}

// ProvisionTenant creates a new tenant for an existing active owner and
// returns the created tenant and its primary domain.
func (s *ProvisioningService) ProvisionTenant(ctx context.Context, input ProvisionTenantInput) (*domain.Tenant, *domain.Domain, error) {
	owner, err := s.repo.Profile().GetByEmail(ctx, domain.NormalizeEmail(input.OwnerEmail))
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUserNotFound, input.OwnerEmail)
	}
	if !owner.IsActive {
		return nil, nil, fmt.Errorf("%w: %s", ErrInactiveUser, owner.Email)
	}

	tenantDomain := s.tenantDomain(input.TenantSlug)
	taken, err := s.repo.Domain().ExistsByDomain(ctx, tenantDomain)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, fmt.Errorf("%w: %s", ErrDomainExists, tenantDomain)
	}

	schemaName := input.SchemaName
	if schemaName == "" {
		schemaName = fmt.Sprintf("%s_%d", strings.ReplaceAll(input.TenantSlug, "-", "_"), time.Now().Unix())
	}
	if !schema.ValidSchemaName(schemaName) {
		return nil, nil, fmt.Errorf("invalid schema name %q", schemaName)
	}

	if s.cfg.MultiTypeTenants && !s.cfg.HasTenantType(input.TenantType) {
		return nil, nil, fmt.Errorf("%w: %q, choices are %s",
			ErrInvalidTenantType, input.TenantType, strings.Join(s.cfg.TenantTypes, ", "))
	}

	var (
		tenant        *domain.Tenant
		tenantDomRow  *domain.Domain
		schemaCreated bool
	)
	err = s.sc.RunIn(s.cfg.PublicSchemaName, func() error {
		txErr := s.repo.Transaction(ctx, func(r repository.Repository) error {
			tenant = &domain.Tenant{
				SchemaName:       schemaName,
				Slug:             input.TenantSlug,
				Name:             input.TenantName,
				Description:      input.Description,
				Type:             input.TenantType,
				OwnerID:          owner.ID,
				AutoCreateSchema: true,
				AutoDropSchema:   true,
			}
			if err := r.Tenant().Create(ctx, tenant); err != nil {
				return err
			}

			// Saving the tenant row allocates its schema.
			if tenant.AutoCreateSchema {
				if err := s.sc.Engine().CreateSchema(ctx, schemaName); err != nil {
					return err
				}
				schemaCreated = true
			}

			tenantDomRow = &domain.Domain{
				Domain:    tenantDomain,
				TenantID:  tenant.ID,
				IsPrimary: true,
			}
			if err := r.Domain().Create(ctx, tenantDomRow); err != nil {
				return err
			}

			// Owner membership lives inside the new tenant's schema.
			return s.sc.RunIn(schemaName, func() error {
				return s.tenants.addUser(ctx, r, tenant, owner, input.IsSuperuser, input.IsStaff)
			})
		})
		if txErr != nil && schemaCreated {
			// Rows are already rolled back; the schema is dropped
			// explicitly so a failed attempt leaves nothing behind.
			if dropErr := s.sc.Engine().DropSchema(ctx, schemaName); dropErr != nil {
				s.logger.Error("failed to drop schema during provisioning rollback", dropErr,
					zap.String("schema", schemaName))
			}
		}
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("tenant provisioned",
		zap.String("schema", schemaName),
		zap.String("domain", tenantDomain),
		zap.String("owner", owner.Email))
	return tenant, tenantDomRow, nil
}

type CreatePublicTenantInput struct {
	DomainURL     string
	OwnerEmail    string
	OwnerPassword string
	IsSuperuser   bool
	IsStaff       bool
	TenantName    string
}

// CreatePublicTenant bootstraps the distinguished public tenant together
// with its owner identity and domain. It refuses to run twice: the guard
// makes the bootstrap idempotent to detect, not to retry.
func (s *ProvisioningService) CreatePublicTenant(ctx context.Context, input CreatePublicTenantInput) (*domain.Tenant, *domain.Domain, *domain.UserProfile, error) {
	publicSchema := s.cfg.PublicSchemaName

	existing, err := s.repo.Tenant().GetBySchemaName(ctx, publicSchema)
	if err != nil {
		return nil, nil, nil, err
	}
	if existing != nil {
		return nil, nil, nil, ErrPublicTenantExists
	}

	if s.cfg.MultiTypeTenants && !s.cfg.HasTenantType(publicSchema) {
		return nil, nil, nil, fmt.Errorf("%w: define a %q tenant type", ErrInvalidTenantType, publicSchema)
	}

	tenantName := input.TenantName
	if tenantName == "" {
		tenantName = "Public Tenant"
	}

	var (
		tenant  *domain.Tenant
		dom     *domain.Domain
		profile *domain.UserProfile
	)
	err = s.sc.RunIn(publicSchema, func() error {
		return s.repo.Transaction(ctx, func(r repository.Repository) error {
			// The owner cannot go through UserService.CreateUser here:
			// that path links new identities to the public tenant, which
			// does not exist yet.
			profile = &domain.UserProfile{
				Email:    domain.NormalizeEmail(input.OwnerEmail),
				IsActive: true,
			}
			if input.OwnerPassword != "" {
				hashed, err := password.Hash(input.OwnerPassword)
				if err != nil {
					return err
				}
				profile.Password = hashed
			} else {
				profile.Password = password.MakeUnusable()
			}
			if err := r.Profile().Create(ctx, profile); err != nil {
				return err
			}

			tenant = &domain.Tenant{
				SchemaName:       publicSchema,
				Slug:             publicSchema,
				Name:             tenantName,
				Type:             s.publicTenantType(),
				OwnerID:          profile.ID,
				AutoCreateSchema: true,
				AutoDropSchema:   false,
			}
			if err := r.Tenant().Create(ctx, tenant); err != nil {
				return err
			}

			dom = &domain.Domain{
				Domain:    input.DomainURL,
				TenantID:  tenant.ID,
				IsPrimary: true,
			}
			if err := r.Domain().Create(ctx, dom); err != nil {
				return err
			}

			return s.tenants.addUser(ctx, r, tenant, profile, input.IsSuperuser, input.IsStaff)
		})
	})
	if err != nil {
		return nil, nil, nil, err
	}

	s.logger.Info("public tenant created",
		zap.String("domain", input.DomainURL),
		zap.String("owner", profile.Email))
	return tenant, dom, profile, nil
}

// tenantDomain computes the domain a slug maps to: bare slug under
// subfolder routing, "{slug}.{base domain}" otherwise.
func (s *ProvisioningService) tenantDomain(slug string) string {
	if s.cfg.SubfolderPrefix != "" {
		return slug
	}
	return fmt.Sprintf("%s.%s", slug, s.cfg.TenantDomain)
}

func (s *ProvisioningService) publicTenantType() string {
	if s.cfg.MultiTypeTenants {
		return s.cfg.PublicSchemaName
	}
	return ""
}
