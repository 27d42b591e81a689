package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

func NewReviewUsecase(
	reviewRepo repo.ReviewRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewOutput struct {
	model.ProductReview
	ReviewerName string `json:"reviewer_name,omitempty"`
}

func (u *ReviewUsecase) Create(ctx context.Context, userID int64, productID int64, in ReviewInput) (ReviewOutput, error) {
	if userID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	created, err := u.reviewRepo.Create(ctx, model.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ReviewOutput{ProductReview: created}
	if user, err := u.userRepo.FindByID(ctx, userID); err == nil {
		out.ReviewerName = user.FullName
	}
	return out, nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ReviewOutput, 0, len(reviews))
	for _, r := range reviews {
		ro := ReviewOutput{ProductReview: r}
		if user, err := u.userRepo.FindByID(ctx, r.UserID); err == nil {
			ro.ReviewerName = user.FullName
		}
		out = append(out, ro)
	}
	return out, nil
}
