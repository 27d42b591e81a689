package repository

import (
	"context"
	"errors"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Select("Name", "NameRw", "ImageURL", "UpdatedAt").
		Updates(&c)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
