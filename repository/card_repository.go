package repository

import (
	"context"

	"shopkart/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardRepository defines data access for locally stored cards.
type CardRepository interface {
	Create(ctx context.Context, card *models.StoredCard) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.StoredCard, error)
	FindByCardNumber(ctx context.Context, cardNumber string, userID uuid.UUID) (*models.StoredCard, error)
	Update(ctx context.Context, card *models.StoredCard) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormCardRepo struct {
	db *gorm.DB
}

func NewGormCardRepo(db *gorm.DB) CardRepository {
	return &gormCardRepo{db: db}
}

func (r *gormCardRepo) Create(ctx context.Context, card *models.StoredCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *gormCardRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.StoredCard, error) {
	var cards []models.StoredCard
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *gormCardRepo) FindByCardNumber(ctx context.Context, cardNumber string, userID uuid.UUID) (*models.StoredCard, error) {
	var card models.StoredCard
	if err := r.db.WithContext(ctx).
		Where("card_number = ? AND user_id = ?", cardNumber, userID).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *gormCardRepo) Update(ctx context.Context, card *models.StoredCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *gormCardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.StoredCard{}, "id = ?", id).Error
}
