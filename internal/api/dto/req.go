package dto

type ProvisionTenantRequest struct {
	Name        string `json:"name" binding:"required" example:"Acme Corp"`
	Slug        string `json:"slug" binding:"required" example:"acme"`
	OwnerEmail  string `json:"owner_email" binding:"required,email" example:"owner@acme.test"`
	TenantType  string `json:"tenant_type" example:"standard"`
	Description string `json:"description" example:"Acme's workspace"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type AddUserRequest struct {
	Email       string `json:"email" binding:"required,email" example:"member@acme.test"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type TransferOwnershipRequest struct {
	NewOwnerEmail string `json:"new_owner_email" binding:"required,email" example:"member@acme.test"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.test"`
	Password string `json:"password" example:"s3cret"`
	IsStaff  bool   `json:"is_staff"`
}

type LoginRequest struct {
	Email        string `json:"email" binding:"required,email" example:"user@example.test"`
	Password     string `json:"password" binding:"required" example:"s3cret"`
	TenantSchema string `json:"tenant_schema" example:"acme_1724990400"`
}
