package domain

import (
	"time"
)

// Tenant is one organization. It owns exactly one database schema; the row
// itself lives in the public schema alongside the rest of the tenant catalog.
type Tenant struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SchemaName  string    `gorm:"type:text;not null;unique" json:"schema_name"`
	Slug        string    `gorm:"type:text;not null" json:"slug"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Type        string    `gorm:"type:text" json:"type,omitempty"`
	OwnerID     string    `gorm:"type:uuid;not null" json:"owner_id"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Schema lifecycle flags. Both default to true; provisioning creates the
	// schema when the row is created and a forced delete drops it again.
	AutoCreateSchema bool `gorm:"not null;default:true" json:"-"`
	AutoDropSchema   bool `gorm:"not null;default:true" json:"-"`

	Owner *UserProfile `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// Domain maps a fully-qualified domain (or subfolder slug) to one tenant.
type Domain struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Domain    string    `gorm:"type:text;not null;unique" json:"domain"`
	TenantID  string    `gorm:"type:uuid;not null" json:"tenant_id"`
	IsPrimary bool      `gorm:"not null;default:true" json:"is_primary"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (Domain) TableName() string {
	return "domains"
}
