package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type RefreshTokenGormRepository struct {
	db *gorm.DB
}

func NewRefreshTokenGormRepository(db *gorm.DB) *RefreshTokenGormRepository {
	return &RefreshTokenGormRepository{db: db}
}

func (r *RefreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *RefreshTokenGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RefreshTokenGormRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", usedAt)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrRefreshTokenNotFound
	}
	return nil
}

func (r *RefreshTokenGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error
}

func (r *RefreshTokenGormRepository) DeleteByID(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", tokenID).
		Delete(&model.RefreshToken{}).Error
}
