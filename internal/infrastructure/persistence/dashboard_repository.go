package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/report"
)

// GormDashboardRepository implements report.DashboardRepository on the
// orders, products and customers tables. Revenue aggregates run as raw
// SQL so Postgres can sum the numeric column without materializing rows.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

const paidRevenueAllTimeSQL = `SELECT COALESCE(SUM(summary_total), 0) AS total FROM orders WHERE payment_status = $1`

const paidRevenueSinceSQL = `SELECT COALESCE(SUM(summary_total), 0) AS total FROM orders WHERE payment_status = $1 AND created_at >= $2`

// PaidRevenue sums order totals over paid orders created at or after
// since. A zero since means all time.
func (r *GormDashboardRepository) PaidRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	query := r.db.WithContext(ctx)
	var err error
	if since.IsZero() {
		err = query.Raw(paidRevenueAllTimeSQL, payment.StatusPaid).Scan(&row).Error
	} else {
		err = query.Raw(paidRevenueSinceSQL, payment.StatusPaid, since).Scan(&row).Error
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// CountOrders counts all orders
func (r *GormDashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&count).Error
	return count, err
}

// CountOrdersByStatus counts orders in the given lifecycle status
func (r *GormDashboardRepository) CountOrdersByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

const countActiveProductsSQL = `SELECT COUNT(*) FROM products WHERE status = $1`

// CountActiveProducts counts products with status active
func (r *GormDashboardRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(countActiveProductsSQL, "active").Scan(&count).Error
	return count, err
}

const countLowStockSQL = `SELECT COUNT(*) FROM products WHERE status = $1 AND inventory_stock <= inventory_low_stock_threshold`

// CountLowStockProducts counts active products at or below their
// low-stock threshold
func (r *GormDashboardRepository) CountLowStockProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(countLowStockSQL, "active").Scan(&count).Error
	return count, err
}

const countActiveCustomersSQL = `SELECT COUNT(*) FROM customers WHERE status = $1`

// CountActiveCustomers counts customers with status active
func (r *GormDashboardRepository) CountActiveCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(countActiveCustomersSQL, "active").Scan(&count).Error
	return count, err
}

// RecentOrders returns the newest orders with items preloaded
func (r *GormDashboardRepository) RecentOrders(ctx context.Context, limit int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

const salesSeriesSQL = `SELECT date_trunc($1, created_at) AS bucket, COALESCE(SUM(summary_total), 0) AS revenue, COUNT(*) AS orders
FROM orders
WHERE payment_status = $2 AND created_at >= $3
GROUP BY bucket
ORDER BY bucket ASC`

// SalesSeries returns paid revenue bucketed by day or week, ascending.
// Buckets with no paid orders are absent from the result.
func (r *GormDashboardRepository) SalesSeries(ctx context.Context, since time.Time, bucket report.BucketGranularity) ([]report.SalesPoint, error) {
	granularity := "day"
	if bucket == report.BucketWeek {
		granularity = "week"
	}

	var rows []struct {
		Bucket  time.Time
		Revenue decimal.Decimal
		Orders  int64
	}
	if err := r.db.WithContext(ctx).
		Raw(salesSeriesSQL, granularity, payment.StatusPaid, since).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	points := make([]report.SalesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, report.SalesPoint{
			Date:    row.Bucket,
			Revenue: row.Revenue,
			Orders:  row.Orders,
		})
	}
	return points, nil
}
