package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/payment"
)

// RefundRequest represents a request to refund part or all of a payment
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note" binding:"max=500"`
}

// ChangeStatusRequest settles or voids a pending payment
type ChangeStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=paid failed cancelled"`
	TransactionID string `json:"transaction_id" binding:"max=100"`
	Gateway       string `json:"gateway" binding:"max=50"`
	Reason        string `json:"reason" binding:"max=500"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending paid failed refunded partially_refunded cancelled"`
	Method   string `form:"method" binding:"omitempty,oneof=upi card net_banking wallet cod"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// TransactionResponse is one entry in the payment transaction log
type TransactionResponse struct {
	Action    string          `json:"action"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                  uuid.UUID             `json:"id"`
	PaymentNumber       string                `json:"payment_number"`
	OrderID             uuid.UUID             `json:"order_id"`
	OrderNumber         string                `json:"order_number"`
	Amount              decimal.Decimal       `json:"amount"`
	RefundedAmount      decimal.Decimal       `json:"refunded_amount"`
	RemainingRefundable decimal.Decimal       `json:"remaining_refundable"`
	Currency            string                `json:"currency"`
	Method              string                `json:"method"`
	Status              string                `json:"status"`
	TransactionID       string                `json:"transaction_id,omitempty"`
	Gateway             string                `json:"gateway,omitempty"`
	PaidAt              *time.Time            `json:"paid_at,omitempty"`
	Transactions        []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// ToPaymentResponse maps a payment aggregate to its API shape
func ToPaymentResponse(p *payment.Payment) *PaymentResponse {
	transactions := make([]TransactionResponse, 0, len(p.Transactions))
	for _, entry := range p.Transactions {
		transactions = append(transactions, TransactionResponse{
			Action:    string(entry.Action),
			Amount:    entry.Amount,
			Status:    string(entry.Status),
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		})
	}

	return &PaymentResponse{
		ID:                  p.ID,
		PaymentNumber:       p.PaymentNumber,
		OrderID:             p.OrderID,
		OrderNumber:         p.OrderNumber,
		Amount:              p.Amount,
		RefundedAmount:      p.RefundedAmount,
		RemainingRefundable: p.RemainingRefundable(),
		Currency:            string(p.Currency),
		Method:              string(p.Method),
		Status:              string(p.Status),
		TransactionID:       p.TransactionID,
		Gateway:             p.Gateway,
		PaidAt:              p.PaidAt,
		Transactions:        transactions,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
