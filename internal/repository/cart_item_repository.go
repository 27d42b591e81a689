package repository

import (
	"context"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

// Cart rows are keyed by (user, product); there is no cart container row.
type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// Same product adds up instead of duplicating the row.
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error
	// SetQuantity replaces the quantity for an existing (user, product) row.
	SetQuantity(ctx context.Context, userID int64, productID int64, qty int64) error
	// DeleteByUserAndProduct is idempotent; deleting a missing row is not an error.
	DeleteByUserAndProduct(ctx context.Context, userID int64, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Add(ctx context.Context, userID int64, productID int64) error
	Remove(ctx context.Context, userID int64, productID int64) error
}
