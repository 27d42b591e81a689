package usecase_test

import (
	"context"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/pricing"
	repo "github.com/Solvent24/odette-market/internal/repository"
	"github.com/Solvent24/odette-market/internal/settings"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// TxManagerMock runs the callback against a fixed set of repos.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposStub struct {
	users         repo.UserRepository
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	cartItems     repo.CartItemRepository
	products      repo.ProductRepository
	adminRequests repo.AdminRequestRepository
	userRoles     repo.UserRoleRepository
}

func (r *TxReposStub) Users() repo.UserRepository                 { return r.users }
func (r *TxReposStub) Orders() repo.OrderRepository               { return r.orders }
func (r *TxReposStub) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *TxReposStub) CartItems() repo.CartItemRepository         { return r.cartItems }
func (r *TxReposStub) Products() repo.ProductRepository           { return r.products }
func (r *TxReposStub) AdminRequests() repo.AdminRequestRepository { return r.adminRequests }
func (r *TxReposStub) UserRoles() repo.UserRoleRepository         { return r.userRoles }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, userID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) SetQuantity(ctx context.Context, userID int64, productID int64, qty int64) error {
	args := m.Called(ctx, userID, productID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByUserAndProduct(ctx context.Context, userID int64, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartItemRepoMock) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

type UserRoleRepoMock struct{ mock.Mock }

func (m *UserRoleRepoMock) Create(ctx context.Context, role *model.UserRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *UserRoleRepoMock) FindByUserID(ctx context.Context, userID int64) (model.UserRole, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(model.UserRole)
	return r, args.Error(1)
}

func (m *UserRoleRepoMock) UpdateRoleByUserID(ctx context.Context, userID int64, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRoleRepoMock) ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error) {
	args := m.Called(ctx, userIDs)
	roles, _ := args.Get(0).([]model.UserRole)
	return roles, args.Error(1)
}

type AdminRequestRepoMock struct{ mock.Mock }

func (m *AdminRequestRepoMock) Create(ctx context.Context, req model.AdminRequest) (model.AdminRequest, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(model.AdminRequest)
	return created, args.Error(1)
}

func (m *AdminRequestRepoMock) FindByID(ctx context.Context, id int64) (model.AdminRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.AdminRequest)
	return r, args.Error(1)
}

func (m *AdminRequestRepoMock) List(ctx context.Context, q string) ([]model.AdminRequest, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.AdminRequest)
	return items, args.Error(1)
}

func (m *AdminRequestRepoMock) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AdminRequestRepoMock) HasActivePendingOrApproved(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *AdminRequestRepoMock) Review(ctx context.Context, id int64, status model.RequestStatus, reviewerID int64, reviewedAt time.Time) error {
	args := m.Called(ctx, id, status, reviewerID, reviewedAt)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Small stubs
// =====================

func fixedPolicy(threshold, fee int64, taxRate float64) pricing.PolicyProvider {
	return pricing.PolicyProviderFunc(func() pricing.Policy {
		return pricing.Policy{
			FreeShippingThreshold: decimal.NewFromInt(threshold),
			ShippingFee:           decimal.NewFromInt(fee),
			TaxRate:               decimal.NewFromFloat(taxRate),
		}
	})
}

type siteStub struct{}

func (siteStub) Settings() settings.SiteSettings { return settings.Defaults() }

func (siteStub) FormatPrice(amount decimal.Decimal) string {
	return "RWF " + amount.String()
}

type okAuthValidator struct{}

func (okAuthValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	return nil
}

func (okAuthValidator) ValidateAdminRegister(ctx context.Context, email, password, confirm string) error {
	return nil
}

func (okAuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	return nil
}

type okCheckoutValidator struct{}

func (okCheckoutValidator) ValidateShippingAddress(a model.ShippingAddress) error { return nil }
