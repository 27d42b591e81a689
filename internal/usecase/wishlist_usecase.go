package usecase

import (
	"context"
	"net/http"

	repo "github.com/Solvent24/odette-market/internal/repository"

	"github.com/shopspring/decimal"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

type WishlistItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	NameRw    string          `json:"name_rw"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildResponse(ctx, userID)
}

func (u *WishlistUsecase) Add(ctx context.Context, userID int64, productID int64) ([]WishlistItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	if err := u.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, userID)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, productID int64) ([]WishlistItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, userID)
}

func (u *WishlistUsecase) buildResponse(ctx context.Context, userID int64) ([]WishlistItemResponse, error) {
	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]WishlistItemResponse, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		resp = append(resp, WishlistItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			NameRw:    p.NameRw,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		})
	}

	return resp, nil
}
