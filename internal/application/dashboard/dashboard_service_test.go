package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/report"
	"github.com/vastravibe/backend/internal/infrastructure/cache"
)

// MockDashboardRepository is a mock implementation of report.DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) PaidRevenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountOrdersByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountLowStockProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountActiveCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) RecentOrders(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockDashboardRepository) SalesSeries(ctx context.Context, since time.Time, bucket report.BucketGranularity) ([]report.SalesPoint, error) {
	args := m.Called(ctx, since, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.SalesPoint), args.Error(1)
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, "2025-06-15T14:30:00Z")
	require.NoError(t, err)
	return func() time.Time { return at }
}

func newRecentOrder(t *testing.T) order.Order {
	t.Helper()
	o, err := order.New("", order.CustomerInfo{
		Name:  "Meera Nair",
		Email: "meera@example.com",
	}, order.ShippingAddress{}, payment.MethodUPI)
	require.NoError(t, err)
	return *o
}

func expectFullStats(t *testing.T, repo *MockDashboardRepository) {
	t.Helper()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	repo.On("PaidRevenue", mock.Anything, time.Time{}).Return(decimal.NewFromInt(125000), nil)
	repo.On("PaidRevenue", mock.Anything, today).Return(decimal.NewFromInt(4200), nil)
	repo.On("CountOrders", mock.Anything).Return(int64(320), nil)
	repo.On("CountOrdersByStatus", mock.Anything, order.StatusPending).Return(int64(12), nil)
	repo.On("CountActiveProducts", mock.Anything).Return(int64(85), nil)
	repo.On("CountLowStockProducts", mock.Anything).Return(int64(7), nil)
	repo.On("CountActiveCustomers", mock.Anything).Return(int64(210), nil)
	repo.On("RecentOrders", mock.Anything, 5).Return([]order.Order{newRecentOrder(t)}, nil)
}

func TestService_Stats(t *testing.T) {
	t.Run("gathers every figure", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewService(repo, zap.NewNop())
		svc.now = fixedClock(t)

		expectFullStats(t, repo)

		resp, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "125000", resp.TotalRevenue.String())
		assert.Equal(t, "4200", resp.TodayRevenue.String())
		assert.Equal(t, int64(320), resp.TotalOrders)
		assert.Equal(t, int64(12), resp.PendingOrders)
		assert.Equal(t, int64(85), resp.TotalProducts)
		assert.Equal(t, int64(7), resp.LowStockCount)
		assert.Equal(t, int64(210), resp.TotalCustomers)
		require.Len(t, resp.RecentOrders, 1)
		assert.Equal(t, "Meera Nair", resp.RecentOrders[0].Customer.Name)
	})

	t.Run("any failed query fails the gather", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewService(repo, zap.NewNop())
		svc.now = fixedClock(t)

		repo.On("PaidRevenue", mock.Anything, mock.Anything).Return(decimal.Zero, nil)
		repo.On("CountOrders", mock.Anything).Return(int64(0), nil)
		repo.On("CountOrdersByStatus", mock.Anything, order.StatusPending).Return(int64(0), nil)
		repo.On("CountActiveProducts", mock.Anything).Return(int64(0), nil)
		repo.On("CountLowStockProducts", mock.Anything).Return(int64(0), errors.New("connection reset"))
		repo.On("CountActiveCustomers", mock.Anything).Return(int64(0), nil)
		repo.On("RecentOrders", mock.Anything, 5).Return([]order.Order{}, nil)

		_, err := svc.Stats(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "low stock products")
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		store := cache.NewMemoryStore()
		svc := NewService(repo, zap.NewNop(),
			WithCache(store, time.Minute, 5*time.Minute, "test:dashboard"))
		svc.now = fixedClock(t)

		expectFullStats(t, repo)

		first, err := svc.Stats(context.Background())
		require.NoError(t, err)
		second, err := svc.Stats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first.TotalOrders, second.TotalOrders)
		repo.AssertNumberOfCalls(t, "CountOrders", 1)
	})
}

func TestService_SalesChart(t *testing.T) {
	t.Run("seven day window buckets by day", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewService(repo, zap.NewNop())
		svc.now = fixedClock(t)

		since := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
		repo.On("SalesSeries", mock.Anything, since, report.BucketDay).Return([]report.SalesPoint{
			{Date: since, Revenue: decimal.NewFromInt(900), Orders: 3},
		}, nil)

		resp, err := svc.SalesChart(context.Background(), ChartFilter{Period: "7days"})

		require.NoError(t, err)
		assert.Equal(t, "7days", resp.Period)
		assert.Equal(t, "day", resp.Bucket)
		require.Len(t, resp.Series, 1)
		assert.Equal(t, int64(3), resp.Series[0].Orders)
	})

	t.Run("unknown period falls back to thirty days by week", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		svc := NewService(repo, zap.NewNop())
		svc.now = fixedClock(t)

		since := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)
		repo.On("SalesSeries", mock.Anything, since, report.BucketWeek).Return([]report.SalesPoint{}, nil)

		resp, err := svc.SalesChart(context.Background(), ChartFilter{Period: "fortnight"})

		require.NoError(t, err)
		assert.Equal(t, "30days", resp.Period)
		assert.Equal(t, "week", resp.Bucket)
		assert.Empty(t, resp.Series)
	})
}
