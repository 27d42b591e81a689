package usecase

import (
	"context"
	"net/http"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"
)

type AdminUserUsecase struct {
	userRepo repo.UserRepository
	roleRepo repo.UserRoleRepository
}

func NewAdminUserUsecase(userRepo repo.UserRepository, roleRepo repo.UserRoleRepository) *AdminUserUsecase {
	return &AdminUserUsecase{userRepo: userRepo, roleRepo: roleRepo}
}

type AdminUserOutput struct {
	model.User
	Role model.Role `json:"role"`
}

func (u *AdminUserUsecase) List(ctx context.Context) ([]AdminUserOutput, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]int64, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	roles, err := u.roleRepo.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	roleByUser := make(map[int64]model.Role, len(roles))
	for _, r := range roles {
		roleByUser[r.UserID] = r.Role
	}

	out := make([]AdminUserOutput, 0, len(users))
	for _, user := range users {
		role, ok := roleByUser[user.ID]
		if !ok {
			role = model.RoleUser
		}
		out = append(out, AdminUserOutput{User: user, Role: role})
	}
	return out, nil
}
