package repository

import (
	"context"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// Same key from the same user returns the same order.
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
