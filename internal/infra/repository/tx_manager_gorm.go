package repository

import (
	"context"

	repo "github.com/Solvent24/odette-market/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users         repo.UserRepository
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	cartItems     repo.CartItemRepository
	products      repo.ProductRepository
	adminRequests repo.AdminRequestRepository
	userRoles     repo.UserRoleRepository
}

func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) CartItems() repo.CartItemRepository         { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) AdminRequests() repo.AdminRequestRepository { return r.adminRequests }
func (r *txReposGorm) UserRoles() repo.UserRoleRepository         { return r.userRoles }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Repos rebuilt on the transaction connection.
		r := &txReposGorm{
			users:         NewUserGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
			products:      NewProductGormRepository(tx),
			adminRequests: NewAdminRequestGormRepository(tx),
			userRoles:     NewUserRoleGormRepository(tx),
		}
		return fn(r)
	})
}
