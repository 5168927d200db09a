package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Corvia/tenant-users/internal/domain"
)

type UserProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *UserProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *UserProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserProfileRepository) HasMembership(ctx context.Context, profileID, tenantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_tenants").
		Where("user_profile_id = ? AND tenant_id = ?", profileID, tenantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserProfileRepository) AddMembership(ctx context.Context, profileID, tenantID string) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO user_tenants (user_profile_id, tenant_id) VALUES (?, ?)", profileID, tenantID).
		Error
}

func (r *UserProfileRepository) RemoveMembership(ctx context.Context, profileID, tenantID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM user_tenants WHERE user_profile_id = ? AND tenant_id = ?", profileID, tenantID).
		Error
}

func (r *UserProfileRepository) ListTenants(ctx context.Context, profileID string) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.db.WithContext(ctx).
		Joins("JOIN user_tenants ON user_tenants.tenant_id = tenants.id").
		Where("user_tenants.user_profile_id = ?", profileID).
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *UserProfileRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.UserProfile, error) {
	var profiles []domain.UserProfile
	err := r.db.WithContext(ctx).
		Joins("JOIN user_tenants ON user_tenants.user_profile_id = user_profiles.id").
		Where("user_tenants.tenant_id = ?", tenantID).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
