package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/order"
)

// ChartPeriod selects the window for the sales chart
type ChartPeriod string

const (
	Period7Days  ChartPeriod = "7days"
	Period30Days ChartPeriod = "30days"
	Period90Days ChartPeriod = "90days"

	// DefaultChartPeriod is used when the request omits or mangles the period
	DefaultChartPeriod = Period30Days
)

// IsValid checks if the period is a known ChartPeriod
func (p ChartPeriod) IsValid() bool {
	switch p {
	case Period7Days, Period30Days, Period90Days:
		return true
	}
	return false
}

// Days returns the window length in days
func (p ChartPeriod) Days() int {
	switch p {
	case Period7Days:
		return 7
	case Period90Days:
		return 90
	default:
		return 30
	}
}

// Bucket returns the grouping granularity for the period. The 30-day
// view buckets by ISO week; the others by calendar day.
func (p ChartPeriod) Bucket() BucketGranularity {
	if p == Period30Days {
		return BucketWeek
	}
	return BucketDay
}

// BucketGranularity is the time grouping for chart series
type BucketGranularity string

const (
	BucketDay  BucketGranularity = "day"
	BucketWeek BucketGranularity = "week"
)

// DashboardStats is the read model behind GET /dashboard/stats. Revenue
// figures include only orders whose payment status is paid.
type DashboardStats struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	PendingOrders  int64           `json:"pending_orders"`
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_products"`
	TotalCustomers int64           `json:"total_customers"`
	RecentOrders   []order.Order   `json:"recent_orders"`
}

// SalesPoint is one bucket of the sales chart series
type SalesPoint struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// DashboardRepository defines the read-only queries behind the
// dashboard. All queries tolerate empty data sets and return zero
// values rather than errors.
type DashboardRepository interface {
	// PaidRevenue sums summary.total over paid orders created at or
	// after since. A zero since means all time.
	PaidRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// CountOrders counts all orders
	CountOrders(ctx context.Context) (int64, error)

	// CountOrdersByStatus counts orders in the given lifecycle status
	CountOrdersByStatus(ctx context.Context, status order.Status) (int64, error)

	// CountActiveProducts counts products with status active
	CountActiveProducts(ctx context.Context) (int64, error)

	// CountLowStockProducts counts active products whose stock is at or
	// below their low-stock threshold
	CountLowStockProducts(ctx context.Context) (int64, error)

	// CountActiveCustomers counts customers with status active
	CountActiveCustomers(ctx context.Context) (int64, error)

	// RecentOrders returns the newest orders, most recent first
	RecentOrders(ctx context.Context, limit int) ([]order.Order, error)

	// SalesSeries returns paid-order revenue bucketed by day or week
	// within [since, now], ascending by bucket date. Buckets with no
	// orders are absent from the result.
	SalesSeries(ctx context.Context, since time.Time, bucket BucketGranularity) ([]SalesPoint, error)
}
