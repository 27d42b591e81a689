package repository

import (
	"context"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteSettingGormRepository struct {
	db *gorm.DB
}

func NewSiteSettingGormRepository(db *gorm.DB) *SiteSettingGormRepository {
	return &SiteSettingGormRepository{db: db}
}

func (r *SiteSettingGormRepository) ListAll(ctx context.Context) ([]model.SiteSetting, error) {
	var rows []model.SiteSetting
	if err := r.db.WithContext(ctx).Order("setting_key asc").Find(&rows).Error; err != nil {
		return []model.SiteSetting{}, err
	}
	return rows, nil
}

func (r *SiteSettingGormRepository) Upsert(ctx context.Context, key string, value string) error {
	row := model.SiteSetting{
		SettingKey:   key,
		SettingValue: value,
		UpdatedAt:    time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).
		Create(&row).Error
}
