package dto

import (
	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/service"
)

// FromTenant converts a Tenant domain model to its response DTO. primaryDomain
// may be empty when the caller did not resolve one.
func FromTenant(tenant *domain.Tenant, primaryDomain string) *TenantResponse {
	return &TenantResponse{
		ID:            tenant.ID,
		Name:          tenant.Name,
		Slug:          tenant.Slug,
		SchemaName:    tenant.SchemaName,
		Type:          tenant.Type,
		Description:   tenant.Description,
		OwnerID:       tenant.OwnerID,
		PrimaryDomain: primaryDomain,
		CreatedAt:     tenant.CreatedAt,
		UpdatedAt:     tenant.UpdatedAt,
	}
}

func FromTenants(tenants []domain.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i, tenant := range tenants {
		responses[i] = *FromTenant(&tenant, "")
	}
	return responses
}

// FromPermissions converts a permissions summary to its response DTO
func FromPermissions(summary *service.PermissionsSummary) *PermissionsResponse {
	return &PermissionsResponse{
		TenantSchema: summary.TenantSchema,
		IsMember:     summary.IsMember,
		IsStaff:      summary.IsStaff,
		IsSuperuser:  summary.IsSuperuser,
		Permissions:  summary.Permissions,
	}
}

// FromUserProfile converts a UserProfile domain model to its response DTO
func FromUserProfile(profile *domain.UserProfile) *UserProfileResponse {
	return &UserProfileResponse{
		ID:         profile.ID,
		Email:      profile.Email,
		IsActive:   profile.IsActive,
		IsVerified: profile.IsVerified,
		CreatedAt:  profile.CreatedAt,
	}
}
