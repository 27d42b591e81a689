package usecase

import (
	"context"
	"net/http"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/notify"
	repo "github.com/Solvent24/odette-market/internal/repository"
)

// Status flow is forward-only: pending -> processing -> shipped ->
// delivered, with cancelled reachable from any non-terminal state.
// delivered and cancelled never change again.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered:  nil,
	model.OrderStatusCancelled:  nil,
}

func canTransition(from, to model.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type AdminOrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	userRepo      repo.UserRepository
	publisher     notify.Publisher
}

func NewAdminOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	userRepo repo.UserRepository,
	publisher notify.Publisher,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		userRepo:      userRepo,
		publisher:     publisher,
	}
}

type AdminOrderOutput struct {
	OrderOutput
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type AdminOrderListOutput struct {
	Orders []AdminOrderOutput `json:"orders"`
	Total  int64              `json:"total"`
	Page   int                `json:"page"`
	Limit  int                `json:"limit"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != "" && !validOrderStatus(model.OrderStatus(f.Status)) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}

	orders, total, err := u.orderRepo.ListAdmin(ctx, f)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := AdminOrderListOutput{
		Orders: make([]AdminOrderOutput, 0, len(orders)),
		Total:  total,
		Page:   f.Page,
		Limit:  f.Limit,
	}
	for _, o := range orders {
		ao := AdminOrderOutput{OrderOutput: OrderOutput{
			ID:              o.ID,
			UserID:          o.UserID,
			Status:          string(o.Status),
			Total:           o.Total,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       o.CreatedAt,
		}}
		if user, err := u.userRepo.FindByID(ctx, o.UserID); err == nil {
			ao.CustomerName = user.FullName
			ao.CustomerEmail = user.Email
		}
		out.Orders = append(out.Orders, ao)
	}
	return out, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (AdminOrderOutput, error) {
	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return AdminOrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return AdminOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return AdminOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
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

	ao := AdminOrderOutput{OrderOutput: OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}}
	if user, err := u.userRepo.FindByID(ctx, o.UserID); err == nil {
		ao.CustomerName = user.FullName
		ao.CustomerEmail = user.Email
	}
	return ao, nil
}

// UpdateStatus applies one step of the status flow. Setting the current
// status again is a no-op success; skipping ahead or reopening a terminal
// order is a conflict.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (AdminOrderOutput, error) {
	if !validOrderStatus(status) {
		return AdminOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return AdminOrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return AdminOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.Status == status {
		return u.Get(ctx, orderID)
	}
	if !canTransition(o.Status, status) {
		return AdminOrderOutput{}, NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return AdminOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.publisher.PublishOrderUpdate(o.UserID, notify.OrderEvent{OrderID: o.ID, Status: status})

	return u.Get(ctx, orderID)
}

func validOrderStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusPending, model.OrderStatusProcessing,
		model.OrderStatusShipped, model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	}
	return false
}
