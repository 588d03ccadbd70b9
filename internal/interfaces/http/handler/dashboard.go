package handler

import (
	"github.com/gin-gonic/gin"

	dashboardapp "github.com/vastravibe/backend/internal/application/dashboard"
)

// DashboardHandler handles dashboard read endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Stats)
		dashboard.GET("/sales-chart", h.SalesChart)
	}
}

// Stats returns the dashboard statistics
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}

// SalesChart returns paid revenue bucketed over the requested window
func (h *DashboardHandler) SalesChart(c *gin.Context) {
	var filter dashboardapp.ChartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	chart, err := h.dashboardService.SalesChart(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, chart)
}
