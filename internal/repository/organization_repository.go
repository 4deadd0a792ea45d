package repository

import (
	"context"

	"gorm.io/gorm"

	"pulseadmin/internal/model"
)

// OrganizationRepository defines tenant persistence operations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uint) (*model.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByTier(ctx context.Context, tier string) (int64, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository builds a GORM-backed repository.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) Update(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *organizationRepository) FindByID(ctx context.Context, id uint) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]model.Organization, error) {
	var orgs []model.Organization
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Organization{}).Count(&count).Error
	return count, err
}

func (r *organizationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("subscription_status = ?", status).Count(&count).Error
	return count, err
}

func (r *organizationRepository) CountByTier(ctx context.Context, tier string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("subscription_tier = ?", tier).Count(&count).Error
	return count, err
}
