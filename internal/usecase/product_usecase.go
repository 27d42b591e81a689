package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductUsecase covers both surfaces: the storefront sees active products
// only, the back office sees everything non-deleted.
type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, categoryRepo: categoryRepo}
}

type ProductListOutput struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

func (u *ProductUsecase) ListPublic(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	switch q.Sort {
	case "", "newest", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	products, total, err := u.productRepo.ListPublic(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Products: products, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *ProductUsecase) GetPublic(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}

func (u *ProductUsecase) ListAdmin(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

type ProductInput struct {
	CategoryID  *int64          `json:"category_id"`
	Name        string          `json:"name"`
	NameRw      string          `json:"name_rw"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	ImageURL    string          `json:"image_url"`
	IsFeatured  bool            `json:"is_featured"`
	IsActive    bool            `json:"is_active"`
}

func (u *ProductUsecase) validateInput(ctx context.Context, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "unknown category")
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		NameRw:      strings.TrimSpace(in.NameRw),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if err := u.validateInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.CategoryID = in.CategoryID
	p.Name = strings.TrimSpace(in.Name)
	p.NameRw = strings.TrimSpace(in.NameRw)
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.IsFeatured = in.IsFeatured
	p.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// Delete is a soft delete; existing order item snapshots keep their data.
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	err := u.productRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
