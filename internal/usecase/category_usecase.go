package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

type CategoryInput struct {
	Name     string `json:"name"`
	NameRw   string `json:"name_rw"`
	ImageURL string `json:"image_url"`
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:     strings.TrimSpace(in.Name),
		NameRw:   strings.TrimSpace(in.NameRw),
		ImageURL: in.ImageURL,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	c, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c.Name = strings.TrimSpace(in.Name)
	c.NameRw = strings.TrimSpace(in.NameRw)
	c.ImageURL = in.ImageURL

	if err := u.categoryRepo.Update(ctx, c); err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	err := u.categoryRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
