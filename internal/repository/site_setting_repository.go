package repository

import (
	"context"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

type SiteSettingRepository interface {
	ListAll(ctx context.Context) ([]model.SiteSetting, error)
	// Upsert writes one key; the settings store only updates its cache after
	// this succeeds.
	Upsert(ctx context.Context, key string, value string) error
}
