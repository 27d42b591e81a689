package repository

import (
	"context"
	"errors"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Featured   *bool
	Sort       string
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	// ListAll returns every non-deleted product, active or not. Admin views
	// and the dashboard aggregator work from the full collection.
	ListAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
