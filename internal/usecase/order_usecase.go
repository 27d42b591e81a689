package usecase

import (
	"context"
	"net/http"

	repo "github.com/Solvent24/odette-market/internal/repository"
)

// OrderUsecase serves the shopper's own order history. Other users'
// orders are indistinguishable from missing ones.
type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
}

func NewOrderUsecase(orderRepo repo.OrderRepository, orderItemRepo repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := u.orderRepo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderListOutput{
		Orders: make([]OrderOutput, 0, len(orders)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for _, o := range orders {
		out.Orders = append(out.Orders, OrderOutput{
			ID:              o.ID,
			UserID:          o.UserID,
			Status:          string(o.Status),
			Total:           o.Total,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt,
		})
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}, nil
}
