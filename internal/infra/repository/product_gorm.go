package repository

import (
	"context"
	"errors"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if q.Q != "" {
		like := "%" + q.Q + "%"
		query = query.Where("name ILIKE ? OR name_rw ILIKE ?", like, like)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.Featured != nil {
		query = query.Where("is_featured = ?", *q.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		query = query.Order("price asc")
	case "price_desc":
		query = query.Order("price desc")
	default:
		query = query.Order("id desc")
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := query.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var items []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", p.ID).
		Select("CategoryID", "Name", "NameRw", "Description", "Price", "Stock", "ImageURL", "IsFeatured", "IsActive", "UpdatedAt").
		Updates(&p)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
