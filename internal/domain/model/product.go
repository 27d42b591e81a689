package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *int64          `gorm:"index" json:"category_id,omitempty"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	NameRw      string          `gorm:"type:varchar(255);column:name_rw" json:"name_rw"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int64           `gorm:"not null" json:"stock"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	IsFeatured  bool            `gorm:"not null;default:false" json:"is_featured"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

type ProductReview struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
