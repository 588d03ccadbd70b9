package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/order"
)

// OrderItemRequest is one line of a create order request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ShippingAddressRequest is the delivery address on a create request
type ShippingAddressRequest struct {
	Name         string `json:"name" binding:"max=200"`
	AddressLine1 string `json:"address_line1" binding:"required,max=255"`
	AddressLine2 string `json:"address_line2" binding:"max=255"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=100"`
	Country      string `json:"country" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"required,max=20"`
	Phone        string `json:"phone" binding:"max=20"`
}

// CreateOrderRequest represents a request to place a new order
type CreateOrderRequest struct {
	CustomerName    string                 `json:"customer_name" binding:"required,max=200"`
	CustomerEmail   string                 `json:"customer_email" binding:"required,email,max=254"`
	CustomerPhone   string                 `json:"customer_phone" binding:"max=20"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string                 `json:"payment_method" binding:"required,oneof=upi card net_banking wallet cod"`
	ShippingCharge  *decimal.Decimal       `json:"shipping_charge"`
	Tax             *decimal.Decimal       `json:"tax"`
	Discount        *decimal.Decimal       `json:"discount"`
	Notes           string                 `json:"notes" binding:"max=2000"`
	CreatedBy       *uuid.UUID             `json:"-"`
}

// UpdateOrderRequest represents a partial update of a pending order
type UpdateOrderRequest struct {
	ShippingAddress *ShippingAddressRequest `json:"shipping_address"`
	Items           []OrderItemRequest      `json:"items" binding:"omitempty,min=1,dive"`
	ShippingCharge  *decimal.Decimal        `json:"shipping_charge"`
	Tax             *decimal.Decimal        `json:"tax"`
	Discount        *decimal.Decimal        `json:"discount"`
	ShippingMethod  *string                 `json:"shipping_method" binding:"omitempty,max=50"`
	Carrier         *string                 `json:"carrier" binding:"omitempty,max=100"`
	TrackingNumber  *string                 `json:"tracking_number" binding:"omitempty,max=100"`
	Notes           *string                 `json:"notes" binding:"omitempty,max=2000"`
}

// ChangeStatusRequest moves an order to a new lifecycle status
type ChangeStatusRequest struct {
	Status    string     `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	Note      string     `json:"note" binding:"max=500"`
	ChangedBy *uuid.UUID `json:"-"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending paid failed refunded partially_refunded cancelled"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy        string `form:"sort_by"`
	SortDir       string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one line item in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// StatusChangeResponse is one entry of the order status history
type StatusChangeResponse struct {
	Status    string     `json:"status"`
	Note      string     `json:"note,omitempty"`
	ChangedBy *uuid.UUID `json:"changed_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID              `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	Customer        order.CustomerInfo     `json:"customer"`
	ShippingAddress order.ShippingAddress  `json:"shipping_address"`
	Items           []OrderItemResponse    `json:"items"`
	Summary         order.Summary          `json:"summary"`
	Payment         order.PaymentInfo      `json:"payment"`
	Shipping        order.ShippingInfo     `json:"shipping"`
	Status          string                 `json:"status"`
	StatusHistory   []StatusChangeResponse `json:"status_history,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

// ToOrderResponse maps an order aggregate to its API shape
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			SKU:       item.SKU,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}

	history := make([]StatusChangeResponse, 0, len(o.StatusHistory))
	for _, change := range o.StatusHistory {
		history = append(history, StatusChangeResponse{
			Status:    string(change.Status),
			Note:      change.Note,
			ChangedBy: change.ChangedBy,
			CreatedAt: change.CreatedAt,
		})
	}

	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Customer:        o.Customer,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		Summary:         o.Summary,
		Payment:         o.Payment,
		Shipping:        o.Shipping,
		Status:          string(o.Status),
		StatusHistory:   history,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}
