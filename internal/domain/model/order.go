package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMTNMomo      PaymentMethod = "mtn_momo"
	PaymentAirtelMoney  PaymentMethod = "airtel_money"
	PaymentCashDelivery PaymentMethod = "cash_delivery"
)

// ShippingAddress is captured at checkout and embeds the chosen payment
// method, matching the shape the storefront always stored.
type ShippingAddress struct {
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	PostalCode    string        `json:"postal_code"`
	Country       string        `json:"country"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	ShippingAddress ShippingAddress `gorm:"serializer:json;type:jsonb" json:"shipping_address"`
	IdempotencyKey  string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// OrderItem freezes the unit price at order time; later product price
// changes never touch it.
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
