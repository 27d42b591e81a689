package repository

import (
	"context"
	"errors"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrUserNotFound
	}
	return nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id desc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

type UserRoleGormRepository struct {
	db *gorm.DB
}

func NewUserRoleGormRepository(db *gorm.DB) *UserRoleGormRepository {
	return &UserRoleGormRepository{db: db}
}

func (r *UserRoleGormRepository) Create(ctx context.Context, role *model.UserRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *UserRoleGormRepository) FindByUserID(ctx context.Context, userID int64) (model.UserRole, error) {
	var ur model.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.UserRole{}, repo.ErrNotFound
	}
	if err != nil {
		return model.UserRole{}, err
	}
	return ur, nil
}

// Update only; the role row is created at signup, never here.
func (r *UserRoleGormRepository) UpdateRoleByUserID(ctx context.Context, userID int64, role model.Role) error {
	res := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Update("role", role)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserRoleGormRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error) {
	if len(userIDs) == 0 {
		return []model.UserRole{}, nil
	}

	var roles []model.UserRole
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&roles).Error; err != nil {
		return []model.UserRole{}, err
	}
	return roles, nil
}
