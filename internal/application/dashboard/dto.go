package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	orderapp "github.com/vastravibe/backend/internal/application/order"
	"github.com/vastravibe/backend/internal/domain/report"
)

// StatsResponse is the dashboard stats payload
type StatsResponse struct {
	TotalRevenue   decimal.Decimal          `json:"total_revenue"`
	TodayRevenue   decimal.Decimal          `json:"today_revenue"`
	TotalOrders    int64                    `json:"total_orders"`
	PendingOrders  int64                    `json:"pending_orders"`
	TotalProducts  int64                    `json:"total_products"`
	LowStockCount  int64                    `json:"low_stock_products"`
	TotalCustomers int64                    `json:"total_customers"`
	RecentOrders   []orderapp.OrderResponse `json:"recent_orders"`
}

// SalesPointResponse is one bucket of the sales chart
type SalesPointResponse struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// SalesChartResponse is the sales chart payload
type SalesChartResponse struct {
	Period string               `json:"period"`
	Bucket string               `json:"bucket"`
	Series []SalesPointResponse `json:"series"`
}

// ChartFilter selects the chart window
type ChartFilter struct {
	Period string `form:"period"`
}

func toStatsResponse(stats *report.DashboardStats) *StatsResponse {
	recent := make([]orderapp.OrderResponse, 0, len(stats.RecentOrders))
	for i := range stats.RecentOrders {
		recent = append(recent, *orderapp.ToOrderResponse(&stats.RecentOrders[i]))
	}
	return &StatsResponse{
		TotalRevenue:   stats.TotalRevenue,
		TodayRevenue:   stats.TodayRevenue,
		TotalOrders:    stats.TotalOrders,
		PendingOrders:  stats.PendingOrders,
		TotalProducts:  stats.TotalProducts,
		LowStockCount:  stats.LowStockCount,
		TotalCustomers: stats.TotalCustomers,
		RecentOrders:   recent,
	}
}

func toChartResponse(period report.ChartPeriod, points []report.SalesPoint) *SalesChartResponse {
	series := make([]SalesPointResponse, 0, len(points))
	for _, point := range points {
		series = append(series, SalesPointResponse{
			Date:    point.Date,
			Revenue: point.Revenue,
			Orders:  point.Orders,
		})
	}
	return &SalesChartResponse{
		Period: string(period),
		Bucket: string(period.Bucket()),
		Series: series,
	}
}
