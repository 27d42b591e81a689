package usecase

import (
	"context"
	"net/http"

	"github.com/Solvent24/odette-market/internal/pricing"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase owns the per-user cart: rows keyed by (user, product),
// re-listed in full after every mutation so the caller always sees the
// stored state.
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	policy       pricing.PolicyProvider
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	policy pricing.PolicyProvider,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		policy:       policy,
	}
}

// Price on a cart line is the product's current price, not a snapshot;
// only placing the order freezes it.
type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	NameRw    string          `json:"name_rw"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int64           `json:"quantity"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Totals    pricing.Totals     `json:"totals"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// AddToCart merges into an existing (user, product) row instead of
// duplicating it.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	if err := u.cartItemRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// SetQuantity updates the row; zero or below removes it.
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, productID int64, qty int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if qty <= 0 {
		return u.RemoveFromCart(ctx, userID, productID)
	}

	err := u.cartItemRepo.SetQuantity(ctx, userID, productID, qty)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// RemoveFromCart is idempotent; removing an absent product is fine.
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.cartItemRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartItemRepo.Clear(ctx, userID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))
	var itemCount int64

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		if !p.IsActive {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			NameRw:    p.NameRw,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Quantity:  it.Quantity,
		})

		lines = append(lines, pricing.Line{UnitPrice: p.Price, Quantity: it.Quantity})
		itemCount += it.Quantity
	}

	return CartResponse{
		Items:     respItems,
		ItemCount: itemCount,
		Totals:    pricing.ComputeTotals(lines, u.policy.ActivePolicy()),
	}, nil
}
