package usecase

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardUsecase aggregates the admin landing page in one call. Numbers
// are computed fresh on every request; nothing here is cached.
type DashboardUsecase struct {
	orderRepo    repo.OrderRepository
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	requestRepo  repo.AdminRequestRepository

	now func() time.Time
}

func NewDashboardUsecase(
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	requestRepo repo.AdminRequestRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		requestRepo:  requestRepo,
		now:          time.Now,
	}
}

type RevenuePoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type CategoryCount struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Products     int64  `json:"products"`
}

type TopStockProduct struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
}

type DashboardOutput struct {
	TotalOrders   int64            `json:"total_orders"`
	TotalRevenue  decimal.Decimal  `json:"total_revenue"`
	TotalProducts int64            `json:"total_products"`

	// Last seven calendar days including today, oldest first, zero-filled.
	RevenueByDay []RevenuePoint `json:"revenue_by_day"`

	// Every known status appears, zero or not.
	StatusDistribution map[string]int64 `json:"status_distribution"`

	ProductsPerCategory []CategoryCount   `json:"products_per_category"`
	TopStock            []TopStockProduct `json:"top_stock"`

	PendingAdminRequests int64 `json:"pending_admin_requests"`
}

func (u *DashboardUsecase) Summary(ctx context.Context) (DashboardOutput, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	pending, err := u.requestRepo.CountPending(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := DashboardOutput{
		TotalOrders:          int64(len(orders)),
		TotalRevenue:         decimal.Zero,
		TotalProducts:        int64(len(products)),
		StatusDistribution:   zeroStatusDistribution(),
		PendingAdminRequests: pending,
	}

	// Window keyed by local calendar date.
	today := u.now()
	byDay := make(map[string]*RevenuePoint, 7)
	out.RevenueByDay = make([]RevenuePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i).Format("2006-01-02")
		out.RevenueByDay = append(out.RevenueByDay, RevenuePoint{Date: d, Revenue: decimal.Zero})
	}
	for i := range out.RevenueByDay {
		byDay[out.RevenueByDay[i].Date] = &out.RevenueByDay[i]
	}

	for _, o := range orders {
		out.StatusDistribution[string(o.Status)]++

		// Cancelled orders count in the distribution but not in revenue.
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		out.TotalRevenue = out.TotalRevenue.Add(o.Total)

		if pt, ok := byDay[o.CreatedAt.Format("2006-01-02")]; ok {
			pt.Revenue = pt.Revenue.Add(o.Total)
			pt.Orders++
		}
	}

	out.ProductsPerCategory = productsPerCategory(categories, products)
	out.TopStock = topStock(products, 5)

	return out, nil
}

func zeroStatusDistribution() map[string]int64 {
	return map[string]int64{
		string(model.OrderStatusPending):    0,
		string(model.OrderStatusProcessing): 0,
		string(model.OrderStatusShipped):    0,
		string(model.OrderStatusDelivered):  0,
		string(model.OrderStatusCancelled):  0,
	}
}

func productsPerCategory(categories []model.Category, products []model.Product) []CategoryCount {
	counts := make(map[int64]int64, len(categories))
	for _, p := range products {
		if p.CategoryID != nil {
			counts[*p.CategoryID]++
		}
	}

	out := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryCount{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Products:     counts[c.ID],
		})
	}
	return out
}

// topStock ranks by stock descending; ties keep the repository order.
func topStock(products []model.Product, n int) []TopStockProduct {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stock > sorted[j].Stock
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]TopStockProduct, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, TopStockProduct{ProductID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return out
}
