package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/pricing"
	repo "github.com/Solvent24/odette-market/internal/repository"
	"github.com/Solvent24/odette-market/internal/settings"

	"github.com/shopspring/decimal"
)

// errIdempotencyRace marks an order INSERT that lost to a concurrent
// submit with the same key; it never leaves PlaceOrder.
var errIdempotencyRace = errors.New("idempotency race")

type CheckoutValidator interface {
	ValidateShippingAddress(a model.ShippingAddress) error
}

// SiteSettingsProvider is the slice of the settings store checkout needs:
// merchant codes for payment instructions and price formatting.
type SiteSettingsProvider interface {
	Settings() settings.SiteSettings
	FormatPrice(amount decimal.Decimal) string
}

// CheckoutUsecase turns the live cart into an order: one transaction for
// order row + item rows + cart clear, so a failed step leaves nothing behind.
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	policy    pricing.PolicyProvider
	site      SiteSettingsProvider
	validator CheckoutValidator
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	policy pricing.PolicyProvider,
	site SiteSettingsProvider,
	validator CheckoutValidator,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		policy:    policy,
		site:      site,
		validator: validator,
	}
}

type PlaceOrderInput struct {
	Shipping       model.ShippingAddress
	IdempotencyKey string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// PaymentInstructions guide the out-of-band mobile-money or cash payment;
// nothing here talks to a gateway and the order stays pending until an
// admin advances it.
type PaymentInstructions struct {
	Method       model.PaymentMethod `json:"method"`
	DialCodes    []string            `json:"dial_codes,omitempty"`
	MerchantCode string              `json:"merchant_code,omitempty"`
	SupportLink  string              `json:"support_link,omitempty"`
}

type OrderOutput struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"user_id"`
	Status          string                `json:"status"`
	Total           decimal.Decimal       `json:"total"`
	Totals          pricing.Totals        `json:"totals"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time             `json:"created_at"`
	Items           []OrderItemOutput     `json:"items"`
	Payment         *PaymentInstructions  `json:"payment,omitempty"`
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.validator.ValidateShippingAddress(in.Shipping); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// A retried submission with the same key returns the same order.
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = u.toOrderOutput(existing, items)
			out.Totals = u.totalsFromItems(items)
			return nil
		}

		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		// Current prices, frozen into the order items below.
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		lines := make([]pricing.Line, 0, len(cartItems))
		now := time.Now()

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid product in cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "invalid product in cart")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			})

			lines = append(lines, pricing.Line{UnitPrice: p.Price, Quantity: ci.Quantity})
		}

		totals := pricing.ComputeTotals(lines, u.policy.ActivePolicy())

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			Total:           totals.GrandTotal,
			ShippingAddress: in.Shipping,
			IdempotencyKey:  key,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			// A concurrent submit with the same key got in first. The
			// failed INSERT aborted this transaction, so the winner is
			// looked up in a fresh one below.
			return errIdempotencyRace
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CartItems().Clear(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:              orderID,
			UserID:          userID,
			Status:          model.OrderStatusPending,
			Total:           totals.GrandTotal,
			ShippingAddress: in.Shipping,
			CreatedAt:       now,
		}
		out = u.toOrderOutput(created, orderItems)
		out.Totals = totals
		return nil
	})

	if errors.Is(err, errIdempotencyRace) {
		return u.findExisting(ctx, userID, key)
	}
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// findExisting returns the order a concurrent submit with the same key
// created, in a transaction of its own.
func (u *CheckoutUsecase) findExisting(ctx context.Context, userID int64, key string) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil || !found {
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = u.toOrderOutput(existing, items)
		out.Totals = u.totalsFromItems(items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// totalsFromItems rebuilds the breakdown from the frozen snapshots, so a
// replayed submission answers with the same body as the original.
func (u *CheckoutUsecase) totalsFromItems(items []model.OrderItem) pricing.Totals {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPriceSnapshot, Quantity: it.Quantity})
	}
	return pricing.ComputeTotals(lines, u.policy.ActivePolicy())
}

func (u *CheckoutUsecase) toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	var itemCount int64
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
		itemCount += it.Quantity
	}

	pay := u.paymentInstructions(o.ShippingAddress.PaymentMethod, o.ID, itemCount, o.Total)

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
		Payment:         pay,
	}
}

func (u *CheckoutUsecase) paymentInstructions(method model.PaymentMethod, orderID int64, itemCount int64, total decimal.Decimal) *PaymentInstructions {
	site := u.site.Settings()
	amount := total.Round(0).String()

	switch method {
	case model.PaymentMTNMomo:
		return &PaymentInstructions{
			Method: method,
			DialCodes: []string{
				fmt.Sprintf("*182*8*1*%s*%s#", site.MTNMomoCode, amount),
				fmt.Sprintf("*182*1*1*%s*%s#", site.MTNMomoCode, amount),
			},
		}
	case model.PaymentAirtelMoney:
		return &PaymentInstructions{
			Method:       method,
			MerchantCode: site.AirtelMoneyCode,
		}
	case model.PaymentCashDelivery:
		msg := fmt.Sprintf("Hello, I placed order #%d (%d items, %s). I would like to pay on delivery.",
			orderID, itemCount, u.site.FormatPrice(total))
		return &PaymentInstructions{
			Method:      method,
			SupportLink: "https://wa.me/" + digitsOnly(site.WhatsappNumber) + "?text=" + url.QueryEscape(msg),
		}
	default:
		return nil
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
