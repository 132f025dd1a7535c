package repository

import (
	"context"

	"shopkart/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressRepository defines data access for billing addresses.
type AddressRepository interface {
	Create(ctx context.Context, addr *models.BillingAddress) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.BillingAddress, error)
	FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.BillingAddress, error)
	Update(ctx context.Context, addr *models.BillingAddress) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormAddressRepo struct {
	db *gorm.DB
}

func NewGormAddressRepo(db *gorm.DB) AddressRepository {
	return &gormAddressRepo{db: db}
}

func (r *gormAddressRepo) Create(ctx context.Context, addr *models.BillingAddress) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *gormAddressRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.BillingAddress, error) {
	var addrs []models.BillingAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *gormAddressRepo) FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.BillingAddress, error) {
	var addr models.BillingAddress
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *gormAddressRepo) Update(ctx context.Context, addr *models.BillingAddress) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

func (r *gormAddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BillingAddress{}, "id = ?", id).Error
}
