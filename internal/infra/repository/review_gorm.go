package repository

import (
	"context"

	"github.com/Solvent24/odette-market/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.ProductReview) (model.ProductReview, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.ProductReview{}, err
	}
	return review, nil
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return []model.ProductReview{}, err
	}
	return reviews, nil
}
