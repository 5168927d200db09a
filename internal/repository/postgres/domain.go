package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Corvia/tenant-users/internal/domain"
)

type DomainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

func (r *DomainRepository) Create(ctx context.Context, d *domain.Domain) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DomainRepository) Save(ctx context.Context, d *domain.Domain) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DomainRepository) ExistsByDomain(ctx context.Context, domainName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Domain{}).
		Where("domain = ?", domainName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DomainRepository) GetPrimaryByTenant(ctx context.Context, tenantID string) (*domain.Domain, error) {
	var d domain.Domain
	err := r.db.WithContext(ctx).
		First(&d, "tenant_id = ? AND is_primary = true", tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DomainRepository) DeleteByTenant(ctx context.Context, tenantID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Domain{}, "tenant_id = ?", tenantID).Error
}
