package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vastravibe/backend/internal/domain/report"
)

// newMockDashboardRepository creates a GormDashboardRepository with a mocked SQL connection
func newMockDashboardRepository(t *testing.T) (*GormDashboardRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormDashboardRepository(gormDB), mock, mockDB
}

func TestGormDashboardRepository_PaidRevenue(t *testing.T) {
	t.Run("all time revenue", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(paidRevenueAllTimeSQL)).
			WithArgs("paid").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("125000.50"))

		total, err := repo.PaidRevenue(context.Background(), time.Time{})

		require.NoError(t, err)
		assert.Equal(t, "125000.5", total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revenue since a date", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(paidRevenueSinceSQL)).
			WithArgs("paid", since).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("9000"))

		total, err := repo.PaidRevenue(context.Background(), since)

		require.NoError(t, err)
		assert.Equal(t, "9000", total.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no paid orders sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(paidRevenueAllTimeSQL)).
			WithArgs("paid").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.PaidRevenue(context.Background(), time.Time{})

		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormDashboardRepository_Counts(t *testing.T) {
	t.Run("count active products", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(countActiveProductsSQL)).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.CountActiveProducts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(42), count)
	})

	t.Run("count low stock products", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(countLowStockSQL)).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountLowStockProducts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("count orders by status", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
			WithArgs("pending").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountOrdersByStatus(context.Background(), "pending")

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

func TestGormDashboardRepository_SalesSeries(t *testing.T) {
	t.Run("daily buckets ascending", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		since := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
		day1 := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"bucket", "revenue", "orders"}).
			AddRow(day1, "1500.00", 2).
			AddRow(day2, "700.00", 1)

		mock.ExpectQuery(regexp.QuoteMeta(salesSeriesSQL)).
			WithArgs("day", "paid", since).
			WillReturnRows(rows)

		points, err := repo.SalesSeries(context.Background(), since, report.BucketDay)

		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, day1, points[0].Date)
		assert.Equal(t, "1500", points[0].Revenue.String())
		assert.Equal(t, int64(2), points[0].Orders)
		assert.Equal(t, day2, points[1].Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("weekly buckets pass week granularity", func(t *testing.T) {
		repo, mock, mockDB := newMockDashboardRepository(t)
		defer mockDB.Close()

		since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(salesSeriesSQL)).
			WithArgs("week", "paid", since).
			WillReturnRows(sqlmock.NewRows([]string{"bucket", "revenue", "orders"}))

		points, err := repo.SalesSeries(context.Background(), since, report.BucketWeek)

		require.NoError(t, err)
		assert.Empty(t, points)
	})
}
