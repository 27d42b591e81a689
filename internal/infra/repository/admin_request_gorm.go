package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type AdminRequestGormRepository struct {
	db *gorm.DB
}

func NewAdminRequestGormRepository(db *gorm.DB) *AdminRequestGormRepository {
	return &AdminRequestGormRepository{db: db}
}

func (r *AdminRequestGormRepository) Create(ctx context.Context, req model.AdminRequest) (model.AdminRequest, error) {
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return model.AdminRequest{}, err
	}
	return req, nil
}

func (r *AdminRequestGormRepository) FindByID(ctx context.Context, id int64) (model.AdminRequest, error) {
	var req model.AdminRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AdminRequest{}, err
	}
	return req, nil
}

func (r *AdminRequestGormRepository) List(ctx context.Context, q string) ([]model.AdminRequest, error) {
	query := r.db.WithContext(ctx).Model(&model.AdminRequest{})

	if q != "" {
		like := "%" + q + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
	}

	var items []model.AdminRequest
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return []model.AdminRequest{}, err
	}
	return items, nil
}

func (r *AdminRequestGormRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminRequest{}).
		Where("status = ?", model.RequestStatusPending).
		Count(&count).Error
	return count, err
}

func (r *AdminRequestGormRepository) HasActivePendingOrApproved(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminRequest{}).
		Where("email = ? AND status IN ?", email, []model.RequestStatus{
			model.RequestStatusPending,
			model.RequestStatusApproved,
		}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Review flips a pending request to a terminal status. The status guard in
// the WHERE clause is what makes terminal states immutable.
func (r *AdminRequestGormRepository) Review(ctx context.Context, id int64, status model.RequestStatus, reviewerID int64, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.AdminRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Row missing or already decided; look to tell the two apart.
		var req model.AdminRequest
		err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}
		return repo.ErrAlreadyReviewed
	}
	return nil
}
