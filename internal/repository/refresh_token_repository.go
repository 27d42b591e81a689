package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
	DeleteByID(ctx context.Context, tokenID string) error
}
