package repository

import (
	"context"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.ProductReview) (model.ProductReview, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error)
}
