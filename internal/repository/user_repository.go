package repository

import (
	"context"
	"errors"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

// The role row is created once at signup; the admin grant path updates it
// by user reference and fails with ErrNotFound when no row exists.
type UserRoleRepository interface {
	Create(ctx context.Context, role *model.UserRole) error
	FindByUserID(ctx context.Context, userID int64) (model.UserRole, error)
	UpdateRoleByUserID(ctx context.Context, userID int64, role model.Role) error
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error)
}
