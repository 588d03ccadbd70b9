package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/report"
	"github.com/vastravibe/backend/internal/infrastructure/cache"
)

const recentOrdersLimit = 5

// Service assembles the dashboard read models. The individual queries
// fan out concurrently; any failure fails the whole gather. Responses
// are cached with a short TTL.
type Service struct {
	repo     report.DashboardRepository
	store    cache.Store
	statsTTL time.Duration
	chartTTL time.Duration
	keyns    string
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures the dashboard Service
type Option func(*Service)

// WithCache enables response caching on the given store
func WithCache(store cache.Store, statsTTL, chartTTL time.Duration, namespace string) Option {
	return func(s *Service) {
		s.store = store
		s.statsTTL = statsTTL
		s.chartTTL = chartTTL
		s.keyns = namespace
	}
}

// NewService creates a new dashboard Service
func NewService(repo report.DashboardRepository, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		keyns:  "dashboard",
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats gathers the dashboard statistics
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	cacheKey := s.keyns + ":stats"
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var resp StatsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	stats := &report.DashboardStats{}
	today := s.startOfToday()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		revenue, err := s.repo.PaidRevenue(gctx, time.Time{})
		if err != nil {
			return fmt.Errorf("total revenue: %w", err)
		}
		stats.TotalRevenue = revenue
		return nil
	})
	g.Go(func() error {
		revenue, err := s.repo.PaidRevenue(gctx, today)
		if err != nil {
			return fmt.Errorf("today revenue: %w", err)
		}
		stats.TodayRevenue = revenue
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CountOrders(gctx)
		if err != nil {
			return fmt.Errorf("total orders: %w", err)
		}
		stats.TotalOrders = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CountOrdersByStatus(gctx, order.StatusPending)
		if err != nil {
			return fmt.Errorf("pending orders: %w", err)
		}
		stats.PendingOrders = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CountActiveProducts(gctx)
		if err != nil {
			return fmt.Errorf("total products: %w", err)
		}
		stats.TotalProducts = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CountLowStockProducts(gctx)
		if err != nil {
			return fmt.Errorf("low stock products: %w", err)
		}
		stats.LowStockCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CountActiveCustomers(gctx)
		if err != nil {
			return fmt.Errorf("total customers: %w", err)
		}
		stats.TotalCustomers = count
		return nil
	})
	g.Go(func() error {
		orders, err := s.repo.RecentOrders(gctx, recentOrdersLimit)
		if err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		stats.RecentOrders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := toStatsResponse(stats)
	s.toCache(ctx, cacheKey, resp, s.statsTTL)
	return resp, nil
}

// SalesChart returns paid revenue bucketed over the requested window.
// Unknown or missing periods fall back to the 30-day view.
func (s *Service) SalesChart(ctx context.Context, filter ChartFilter) (*SalesChartResponse, error) {
	period := report.ChartPeriod(filter.Period)
	if !period.IsValid() {
		period = report.DefaultChartPeriod
	}

	cacheKey := fmt.Sprintf("%s:chart:%s", s.keyns, period)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var resp SalesChartResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	since := s.startOfToday().AddDate(0, 0, -(period.Days() - 1))
	points, err := s.repo.SalesSeries(ctx, since, period.Bucket())
	if err != nil {
		return nil, err
	}

	resp := toChartResponse(period, points)
	s.toCache(ctx, cacheKey, resp, s.chartTTL)
	return resp, nil
}

func (s *Service) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if s.store == nil {
		return nil, false
	}
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

func (s *Service) toCache(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, payload, ttl); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
