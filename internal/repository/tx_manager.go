package repository

import "context"

// Repos rebuilt on the transaction connection.
type TxRepos interface {
	Users() UserRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	CartItems() CartItemRepository
	Products() ProductRepository
	AdminRequests() AdminRequestRepository
	UserRoles() UserRoleRepository
}

// TransactionManager hides begin/commit/rollback from usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
