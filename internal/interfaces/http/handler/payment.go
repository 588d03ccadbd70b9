package handler

import (
	"github.com/gin-gonic/gin"

	paymentapp "github.com/vastravibe/backend/internal/application/payment"
	"github.com/vastravibe/backend/internal/domain/identity"
	"github.com/vastravibe/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes. Refunds and manual status
// changes require the admin or manager role.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	canSettle := middleware.RequireRole(identity.RoleAdmin.String(), identity.RoleManager.String())

	payments := rg.Group("/payments")
	{
		payments.GET("", h.List)
		payments.GET("/:id", h.GetByID)
		payments.POST("/:id/refund", canSettle, h.Refund)
		payments.PUT("/:id/status", canSettle, h.ChangeStatus)
	}
}

// GetByID retrieves a payment with its transaction log
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// List retrieves a paginated payment list
func (h *PaymentHandler) List(c *gin.Context) {
	var filter paymentapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// Refund refunds part or all of a paid payment
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req paymentapp.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}

// ChangeStatus settles, fails or cancels a pending payment
func (h *PaymentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req paymentapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, payment)
}
