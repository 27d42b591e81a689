package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetMyOrder_OtherUsersOrderIs404(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orders, items)

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, UserID: 2}, nil)

	_, err := uc.GetMyOrder(context.Background(), 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	items.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestGetMyOrder_ReturnsFrozenItems(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orders, items)

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, UserID: 1, Status: model.OrderStatusShipped, Total: decimal.NewFromInt(25600),
	}, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		{OrderID: 10, ProductID: 7, ProductNameSnapshot: "Agaseke", UnitPriceSnapshot: decimal.NewFromInt(10000), Quantity: 2},
	}, nil)

	out, err := uc.GetMyOrder(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, "shipped", out.Status)
	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, "Agaseke", out.Items[0].Name)
		assert.True(t, out.Items[0].Price.Equal(decimal.NewFromInt(10000)))
	}
}

func TestGetMyOrder_UnknownOrderIs404(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMyOrder(context.Background(), 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestListMyOrders_ClampsPaging(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))

	orders.On("ListByUserID", mock.Anything, int64(1), 1, 20).Return([]model.Order{}, int64(0), nil)

	out, err := uc.ListMyOrders(context.Background(), 1, 0, 500)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	orders.AssertExpectations(t)
}
