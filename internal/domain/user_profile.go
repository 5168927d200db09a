package domain

import (
	"strings"
	"time"

	"github.com/Corvia/tenant-users/internal/cache"
)

// UserProfile is the single authentication record for a human user. It lives
// only in the public schema; all authorization state is kept per tenant in
// UserTenantPermissions. A profile is never hard-deleted -- deletion flips
// Active to false after unwinding every tenant membership, so historical
// associations survive.
type UserProfile struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email      string    `gorm:"type:text;not null;unique" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Tenants []Tenant `gorm:"many2many:user_tenants" json:"-"`

	// permCache memoizes schema-scoped computed values (staff/superuser
	// flags) so a long-lived profile object that crosses tenant contexts
	// never leaks one schema's answer into another's.
	permCache *cache.TenantCache `gorm:"-" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// PermCache returns the profile's schema-scoped cache, creating it lazily.
func (u *UserProfile) PermCache() *cache.TenantCache {
	if u.permCache == nil {
		u.permCache = cache.NewTenantCache()
	}
	return u.permCache
}

// NormalizeEmail lowercases the domain part of an email address, leaving the
// local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
