package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// Method represents how a payment was made
type Method string

const (
	MethodUPI        Method = "upi"
	MethodCard       Method = "card"
	MethodNetBanking Method = "net_banking"
	MethodWallet     Method = "wallet"
	MethodCOD        Method = "cod"
)

// IsValid checks if the method is a known payment Method
func (m Method) IsValid() bool {
	switch m {
	case MethodUPI, MethodCard, MethodNetBanking, MethodWallet, MethodCOD:
		return true
	}
	return false
}

// Status represents the status of a payment
type Status string

const (
	StatusPending           Status = "pending"
	StatusPaid              Status = "paid"
	StatusFailed            Status = "failed"
	StatusRefunded          Status = "refunded"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusCancelled         Status = "cancelled"
)

// IsValid checks if the status is a valid payment Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded, StatusPartiallyRefunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsRefundable returns true if a refund may be applied in this status
func (s Status) IsRefundable() bool {
	return s == StatusPaid || s == StatusPartiallyRefunded
}

// TransactionAction identifies a transaction log entry type
type TransactionAction string

const (
	ActionCreated   TransactionAction = "created"
	ActionPaid      TransactionAction = "paid"
	ActionFailed    TransactionAction = "failed"
	ActionRefund    TransactionAction = "refund"
	ActionCancelled TransactionAction = "cancelled"
)

// TransactionEntry is an append-only entry in the payment transaction log
type TransactionEntry struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"payment_id"`
	Action    TransactionAction `gorm:"type:varchar(20);not null" json:"action"`
	Amount    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
	Status    Status            `gorm:"type:varchar(30);not null" json:"status"`
	Note      string            `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName returns the table name for GORM
func (TransactionEntry) TableName() string {
	return "payment_transactions"
}

// Payment represents a payment ledger aggregate root. It tracks the
// amount collected for an order and every action applied to it.
// Invariant: cumulative refunds never exceed the paid amount.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentNumber  string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	OrderNumber    string               `gorm:"type:varchar(50);not null;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	RefundedAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null;default:'INR'"`
	Method         Method               `gorm:"type:varchar(20);not null"`
	Status         Status               `gorm:"type:varchar(30);not null;default:'pending';index"`
	TransactionID  string               `gorm:"type:varchar(100)"`
	Gateway        string               `gorm:"type:varchar(50)"`
	PaidAt         *time.Time
	Transactions   []TransactionEntry `gorm:"foreignKey:PaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// New creates a new pending payment for an order
func New(orderID uuid.UUID, orderNumber string, amount valueobject.Money, method Method) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentNumber:     shared.NewReferenceNumber(shared.PaymentNumberPrefix),
		OrderID:           orderID,
		OrderNumber:       orderNumber,
		Amount:            amount.Amount(),
		RefundedAmount:    decimal.Zero,
		Currency:          amount.Currency(),
		Method:            method,
		Status:            StatusPending,
	}
	p.appendTransaction(ActionCreated, amount.Amount(), StatusPending, "Payment created")

	return p, nil
}

// MarkPaid records a successful capture
func (p *Payment) MarkPaid(transactionID, gateway string) error {
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark %s payment as paid", p.Status))
	}

	now := time.Now()
	p.Status = StatusPaid
	p.TransactionID = transactionID
	p.Gateway = gateway
	p.PaidAt = &now
	p.appendTransaction(ActionPaid, p.Amount, StatusPaid, "Payment captured")
	p.UpdatedAt = now

	return nil
}

// MarkFailed records a failed capture attempt
func (p *Payment) MarkFailed(reason string) error {
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark %s payment as failed", p.Status))
	}

	p.Status = StatusFailed
	p.appendTransaction(ActionFailed, decimal.Zero, StatusFailed, reason)
	p.UpdatedAt = time.Now()

	return nil
}

// Cancel voids a pending payment
func (p *Payment) Cancel(reason string) error {
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel %s payment", p.Status))
	}

	p.Status = StatusCancelled
	p.appendTransaction(ActionCancelled, decimal.Zero, StatusCancelled, reason)
	p.UpdatedAt = time.Now()

	return nil
}

// Refund applies a refund of the given amount. Accepted only while the
// payment is paid or partially refunded, for a positive amount no
// greater than the remaining refundable balance. The resulting status
// is refunded when the full amount has been returned, otherwise
// partially_refunded.
func (p *Payment) Refund(amount valueobject.Money, note string) error {
	if !p.Status.IsRefundable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund %s payment", p.Status))
	}
	if amount.Currency() != p.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", fmt.Sprintf("Refund currency %s does not match payment currency %s", amount.Currency(), p.Currency))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_REFUND_AMOUNT", "Refund amount must be positive")
	}
	remaining := p.Amount.Sub(p.RefundedAmount)
	if amount.Amount().GreaterThan(remaining) {
		return shared.ErrRefundExceedsAmount
	}

	p.RefundedAmount = p.RefundedAmount.Add(amount.Amount())
	if p.RefundedAmount.Equal(p.Amount) {
		p.Status = StatusRefunded
	} else {
		p.Status = StatusPartiallyRefunded
	}
	p.appendTransaction(ActionRefund, amount.Amount(), p.Status, note)
	p.UpdatedAt = time.Now()

	return nil
}

// RemainingRefundable returns the amount still available for refund
func (p *Payment) RemainingRefundable() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Amount, p.Currency)
	return m
}

// GetRefundedMoney returns the refunded amount as Money
func (p *Payment) GetRefundedMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.RefundedAmount, p.Currency)
	return m
}

func (p *Payment) appendTransaction(action TransactionAction, amount decimal.Decimal, status Status, note string) {
	p.Transactions = append(p.Transactions, TransactionEntry{
		ID:        uuid.New(),
		PaymentID: p.ID,
		Action:    action,
		Amount:    amount,
		Status:    status,
		Note:      note,
		CreatedAt: time.Now(),
	})
}
