package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// Service handles payment ledger operations. Every status change is
// mirrored into the payment snapshot on the owning order so dashboard
// queries stay on the orders table.
type Service struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
}

// NewService creates a new payment Service
func NewService(paymentRepo payment.Repository, orderRepo order.Repository) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// GetByID retrieves a payment with its transaction log
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// GetByOrderID retrieves the payment attached to an order
func (s *Service) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// List retrieves payments matching the filter, with the total count
func (s *Service) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
	}
	if filter.SortDir != "" {
		domainFilter.OrderDir = filter.SortDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, *ToPaymentResponse(&payments[i]))
	}
	return responses, total, nil
}

// Refund refunds part or all of a payment. The aggregate enforces the
// refundable-state and amount invariants.
func (s *Service) Refund(ctx context.Context, id uuid.UUID, req RefundRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, p.Currency)
	if err != nil {
		return nil, err
	}
	if err := p.Refund(amount, req.Note); err != nil {
		return nil, err
	}

	p.IncrementVersion()
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.syncOrderSnapshot(ctx, p); err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// ChangeStatus settles, fails or cancels a pending payment
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch payment.Status(req.Status) {
	case payment.StatusPaid:
		err = p.MarkPaid(req.TransactionID, req.Gateway)
	case payment.StatusFailed:
		err = p.MarkFailed(req.Reason)
	case payment.StatusCancelled:
		err = p.Cancel(req.Reason)
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unsupported payment status change")
	}
	if err != nil {
		return nil, err
	}

	p.IncrementVersion()
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.syncOrderSnapshot(ctx, p); err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// syncOrderSnapshot mirrors the ledger status into the payment snapshot
// embedded on the order
func (s *Service) syncOrderSnapshot(ctx context.Context, p *payment.Payment) error {
	o, err := s.orderRepo.FindByID(ctx, p.OrderID)
	if err != nil {
		return err
	}
	o.SyncPaymentStatus(p.Status, p.TransactionID, p.Gateway)
	return s.orderRepo.Save(ctx, o)
}
