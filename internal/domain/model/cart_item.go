package model

import "time"

// At most one row per (user, product); adding the same product again
// increments quantity. Quantity is always positive, zero deletes the row.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type WishlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
