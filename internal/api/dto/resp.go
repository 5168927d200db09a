package dto

import (
	"time"
)

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID            string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name          string    `json:"name" example:"Acme Corp"`
	Slug          string    `json:"slug" example:"acme"`
	SchemaName    string    `json:"schema_name" example:"acme_1724990400"`
	Type          string    `json:"type,omitempty" example:"standard"`
	Description   string    `json:"description,omitempty" example:"Acme's workspace"`
	OwnerID       string    `json:"owner_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PrimaryDomain string    `json:"primary_domain,omitempty" example:"acme.example.test"`
	CreatedAt     time.Time `json:"created_at" example:"2026-08-30T09:00:00Z"`
	UpdatedAt     time.Time `json:"updated_at" example:"2026-08-30T09:00:00Z"`
}

// UserProfileResponse represents a user profile in API responses
type UserProfileResponse struct {
	ID         string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email      string    `json:"email" example:"user@example.test"`
	IsActive   bool      `json:"is_active" example:"true"`
	IsVerified bool      `json:"is_verified" example:"false"`
	CreatedAt  time.Time `json:"created_at" example:"2026-08-30T09:00:00Z"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token string              `json:"token"`
	User  UserProfileResponse `json:"user"`
}

// PermissionsResponse is the caller's authorization state in one tenant
type PermissionsResponse struct {
	TenantSchema string   `json:"tenant_schema" example:"acme_1724990400"`
	IsMember     bool     `json:"is_member" example:"true"`
	IsStaff      bool     `json:"is_staff" example:"false"`
	IsSuperuser  bool     `json:"is_superuser" example:"false"`
	Permissions  []string `json:"permissions"`
}

// Error represents a standard error response
type Error struct {
	Error string `json:"error" example:"error message"`
}
