package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

func (r *CartItemGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// Same (user, product) pair adds up; a second add never creates a second row.
func (r *CartItemGormRepository) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error

		if err == nil {
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", item.Quantity+addQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		newItem := model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		return tx.Create(&newItem).Error
	})
}

func (r *CartItemGormRepository) SetQuantity(ctx context.Context, userID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) DeleteByUserAndProduct(ctx context.Context, userID int64, productID int64) error {
	// Deleting a row that is already gone is fine.
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *CartItemGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

type WishlistGormRepository struct {
	db *gorm.DB
}

func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.WishlistItem{}, err
	}

	return items, nil
}

func (r *WishlistGormRepository) Add(ctx context.Context, userID int64, productID int64) error {
	item := model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}

	// The unique index makes a repeated add a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error
}

func (r *WishlistGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error
}
