package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func shippingAddress(method model.PaymentMethod) model.ShippingAddress {
	return model.ShippingAddress{
		FullName:      "Odette U.",
		Email:         "odette@example.com",
		Phone:         "0788123456",
		Address:       "KN 5 Rd",
		City:          "Kigali",
		State:         "Kigali City",
		Country:       "Rwanda",
		PaymentMethod: method,
	}
}

type checkoutHarness struct {
	tx         *TxManagerMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	cartItems  *CartItemRepoMock
	products   *ProductRepoMock
	uc         *usecase.CheckoutUsecase
}

func newCheckoutHarness(threshold, fee int64, taxRate float64) *checkoutHarness {
	h := &checkoutHarness{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(ProductRepoMock),
	}
	h.tx = &TxManagerMock{Repos: &TxReposStub{
		orders:     h.orders,
		orderItems: h.orderItems,
		cartItems:  h.cartItems,
		products:   h.products,
	}}
	h.tx.On("WithinTx", mock.Anything).Return(nil)

	h.uc = usecase.NewCheckoutUsecase(h.tx, fixedPolicy(threshold, fee, taxRate), siteStub{}, okCheckoutValidator{})
	return h
}

func TestPlaceOrder_FreezesPricesAndClearsCart(t *testing.T) {
	// threshold 50, fee 5, tax 10%: 25.00 + 5.00 + 2.50 = 32.50
	h := newCheckoutHarness(50, 5, 0.10)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 2},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromFloat(12.50), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending &&
			o.Total.Equal(decimal.NewFromFloat(32.50)) &&
			o.IdempotencyKey == "key-1"
	})).Return(int64(100), nil)
	h.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].UnitPriceSnapshot.Equal(decimal.NewFromFloat(12.50)) &&
			items[0].ProductNameSnapshot == "Agaseke" &&
			items[0].Quantity == 2
	})).Return(nil)
	h.cartItems.On("Clear", mock.Anything, int64(1)).Return(nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.ID)
	assert.Equal(t, "pending", out.Status)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, out.Totals.Shipping.Equal(decimal.NewFromFloat(5.00)))
	assert.True(t, out.Totals.Tax.Equal(decimal.NewFromFloat(2.50)))
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromFloat(32.50)))
	h.cartItems.AssertExpectations(t)
	h.orders.AssertExpectations(t)
	h.orderItems.AssertExpectations(t)
}

func TestPlaceOrder_SameKeyReturnsSameOrder(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	existing := model.Order{
		ID:              42,
		UserID:          1,
		Status:          model.OrderStatusPending,
		Total:           decimal.NewFromInt(25600),
		ShippingAddress: shippingAddress(model.PaymentAirtelMoney),
	}
	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-dup").Return(existing, true, nil)
	h.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, ProductNameSnapshot: "Agaseke", UnitPriceSnapshot: decimal.NewFromInt(10000), Quantity: 2},
	}, nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentAirtelMoney),
		IdempotencyKey: "key-dup",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	// The replayed body carries the same breakdown as the original:
	// 20000 + 2000 shipping + 3600 tax = 25600.
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(20000)))
	assert.True(t, out.Totals.Shipping.Equal(decimal.NewFromInt(2000)))
	assert.True(t, out.Totals.Tax.Equal(decimal.NewFromInt(3600)))
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromInt(25600)))
	// No new order, no cart mutation.
	h.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.cartItems.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestPlaceOrder_TwoLineCartFreezesEachSnapshot(t *testing.T) {
	// threshold 50, fee 5, tax 10%: (10.00*2 + 5.00) + 5.00 + 2.50 = 32.50
	h := newCheckoutHarness(50, 5, 0.10)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-6").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 2},
		{UserID: 1, ProductID: 8, Quantity: 1},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromFloat(10.00), IsActive: true,
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(8)).Return(model.Product{
		ID: 8, Name: "Imigongo", Price: decimal.NewFromFloat(5.00), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Total.Equal(decimal.NewFromFloat(32.50))
	})).Return(int64(100), nil)
	h.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductNameSnapshot == "Agaseke" &&
			items[0].UnitPriceSnapshot.Equal(decimal.NewFromFloat(10.00)) &&
			items[0].Quantity == 2 &&
			items[1].ProductNameSnapshot == "Imigongo" &&
			items[1].UnitPriceSnapshot.Equal(decimal.NewFromFloat(5.00)) &&
			items[1].Quantity == 1
	})).Return(nil)
	h.cartItems.On("Clear", mock.Anything, int64(1)).Return(nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-6",
	})

	assert.NoError(t, err)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, out.Totals.Shipping.Equal(decimal.NewFromFloat(5.00)))
	assert.True(t, out.Totals.Tax.Equal(decimal.NewFromFloat(2.50)))
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromFloat(32.50)))
	h.orderItems.AssertExpectations(t)
}

func TestPlaceOrder_LostInsertRaceReturnsWinnerFromFreshTx(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-race").
		Return(model.Order{}, false, nil).Once()
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 2},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromInt(10000), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("duplicate key"))
	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-race").
		Return(model.Order{
			ID: 77, UserID: 1, Status: model.OrderStatusPending, Total: decimal.NewFromInt(25600),
			ShippingAddress: shippingAddress(model.PaymentMTNMomo),
		}, true, nil).Once()
	h.orderItems.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{OrderID: 77, ProductID: 7, ProductNameSnapshot: "Agaseke", UnitPriceSnapshot: decimal.NewFromInt(10000), Quantity: 2},
	}, nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-race",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.ID)
	assert.True(t, out.Totals.GrandTotal.Equal(decimal.NewFromInt(25600)))
	// The aborted transaction cannot serve the lookup; the winner comes
	// from a second one.
	h.tx.AssertNumberOfCalls(t, "WithinTx", 2)
	h.cartItems.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestPlaceOrder_LostInsertRaceWithoutWinnerIs409(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-race2").
		Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 1},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromInt(10000), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-race2",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestPlaceOrder_EmptyCartIs400(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-2").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	_, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-2",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestPlaceOrder_ItemInsertFailureStopsBeforeCartClear(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-3").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 1},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromInt(10000), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.Anything).Return(int64(100), nil)
	h.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(errors.New("db down"))

	_, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-3",
	})

	assert.Error(t, err)
	h.cartItems.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingIdempotencyKeyIs400(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	_, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping: shippingAddress(model.PaymentMTNMomo),
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestPlaceOrder_MTNInstructionsUseMerchantCodeAndAmount(t *testing.T) {
	h := newCheckoutHarness(50, 5, 0.10)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-4").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 2},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromFloat(12.50), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.Anything).Return(int64(100), nil)
	h.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(nil)
	h.cartItems.On("Clear", mock.Anything, int64(1)).Return(nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentMTNMomo),
		IdempotencyKey: "key-4",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, model.PaymentMTNMomo, out.Payment.Method)
		// 32.50 rounds to 33 for the dial string.
		assert.Contains(t, out.Payment.DialCodes, "*182*8*1*0783308948*33#")
		assert.Contains(t, out.Payment.DialCodes, "*182*1*1*0783308948*33#")
	}
}

func TestPlaceOrder_CashDeliveryLinksWhatsapp(t *testing.T) {
	h := newCheckoutHarness(50000, 2000, 0.18)

	h.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-5").Return(model.Order{}, false, nil)
	h.cartItems.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{
		{UserID: 1, ProductID: 7, Quantity: 1},
	}, nil)
	h.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Agaseke", Price: decimal.NewFromInt(10000), IsActive: true,
	}, nil)
	h.orders.On("Create", mock.Anything, mock.Anything).Return(int64(101), nil)
	h.orderItems.On("CreateBulk", mock.Anything, int64(101), mock.Anything).Return(nil)
	h.cartItems.On("Clear", mock.Anything, int64(1)).Return(nil)

	out, err := h.uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Shipping:       shippingAddress(model.PaymentCashDelivery),
		IdempotencyKey: "key-5",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.Payment) {
		assert.Contains(t, out.Payment.SupportLink, "https://wa.me/250783308948?text=")
	}
}
