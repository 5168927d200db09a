package domain

import (
	"time"
)

// UserTenantPermissions is the per-tenant authorization record for one user.
// The table exists in every tenant schema (the public schema included), so
// the same profile can hold completely different flags and roles in each
// tenant. The integer primary key is a schema-local sequence: the same ID in
// two schemas denotes two unrelated records, and nothing may ever join on it
// across schemas.
type UserTenantPermissions struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID   string    `gorm:"type:uuid;not null;uniqueIndex" json:"profile_id"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Groups []Group `gorm:"many2many:user_tenant_permission_groups" json:"-"`
}

func (UserTenantPermissions) TableName() string {
	return "user_tenant_permissions"
}

// Group is a schema-local role container: a named set of permissions that
// can be attached to authorization records.
type Group struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null;unique" json:"name"`

	Permissions []Permission `gorm:"many2many:group_permissions" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// Permission identifies one grantable action as "app_label.codename".
type Permission struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AppLabel string `gorm:"type:text;not null;uniqueIndex:uq_permission" json:"app_label"`
	Codename string `gorm:"type:text;not null;uniqueIndex:uq_permission" json:"codename"`
	Name     string `gorm:"type:text" json:"name,omitempty"`
}

func (Permission) TableName() string {
	return "permissions"
}

// String returns the canonical "app_label.codename" form used by permission
// checks.
func (p Permission) String() string {
	return p.AppLabel + "." + p.Codename
}
