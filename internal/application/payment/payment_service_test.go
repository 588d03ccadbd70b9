package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vastravibe/backend/internal/domain/order"
	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPaidFixture(t *testing.T, amount float64) (*payment.Payment, *order.Order) {
	t.Helper()
	o, err := order.New("", order.CustomerInfo{
		Name:  "Ravi Shah",
		Email: "ravi@example.com",
	}, order.ShippingAddress{}, payment.MethodCard)
	require.NoError(t, err)

	p, err := payment.New(o.ID, o.OrderNumber, valueobject.NewMoneyINRFromFloat(amount), payment.MethodCard)
	require.NoError(t, err)
	require.NoError(t, p.MarkPaid("txn_123", "razorpay"))
	return p, o
}

func TestService_Refund(t *testing.T) {
	t.Run("partial refund syncs the order snapshot", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		p, o := newPaidFixture(t, 1000)

		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		payments.On("Save", mock.Anything, p).Return(nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Refund(context.Background(), p.ID, RefundRequest{
			Amount: decimal.NewFromInt(400),
			Note:   "size exchange",
		})

		require.NoError(t, err)
		assert.Equal(t, "partially_refunded", resp.Status)
		assert.Equal(t, "400", resp.RefundedAmount.String())
		assert.Equal(t, "600", resp.RemainingRefundable.String())
		assert.Equal(t, payment.StatusPartiallyRefunded, o.Payment.Status)
	})

	t.Run("full refund marks refunded", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		p, o := newPaidFixture(t, 1000)

		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		payments.On("Save", mock.Anything, p).Return(nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Refund(context.Background(), p.ID, RefundRequest{
			Amount: decimal.NewFromInt(1000),
		})

		require.NoError(t, err)
		assert.Equal(t, "refunded", resp.Status)
		assert.Equal(t, payment.StatusRefunded, o.Payment.Status)
	})

	t.Run("refund beyond remaining balance is rejected", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		p, _ := newPaidFixture(t, 1000)
		require.NoError(t, p.Refund(valueobject.NewMoneyINRFromFloat(400), ""))

		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.Refund(context.Background(), p.ID, RefundRequest{
			Amount: decimal.NewFromInt(700),
		})

		assert.ErrorIs(t, err, shared.ErrRefundExceedsAmount)
		payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("pending payment is not refundable", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		o, err := order.New("", order.CustomerInfo{Name: "Ravi Shah", Email: "ravi@example.com"},
			order.ShippingAddress{}, payment.MethodCOD)
		require.NoError(t, err)
		p, err := payment.New(o.ID, o.OrderNumber, valueobject.NewMoneyINRFromFloat(500), payment.MethodCOD)
		require.NoError(t, err)

		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err = svc.Refund(context.Background(), p.ID, RefundRequest{
			Amount: decimal.NewFromInt(100),
		})

		assert.Error(t, err)
	})
}

func TestService_ChangeStatus(t *testing.T) {
	t.Run("marking paid stamps the order snapshot", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		o, err := order.New("", order.CustomerInfo{Name: "Ravi Shah", Email: "ravi@example.com"},
			order.ShippingAddress{}, payment.MethodUPI)
		require.NoError(t, err)
		p, err := payment.New(o.ID, o.OrderNumber, valueobject.NewMoneyINRFromFloat(750), payment.MethodUPI)
		require.NoError(t, err)

		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		payments.On("Save", mock.Anything, p).Return(nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.ChangeStatus(context.Background(), p.ID, ChangeStatusRequest{
			Status:        "paid",
			TransactionID: "upi_789",
			Gateway:       "razorpay",
		})

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.NotNil(t, resp.PaidAt)
		assert.Equal(t, payment.StatusPaid, o.Payment.Status)
		assert.Equal(t, "upi_789", o.Payment.TransactionID)
		assert.NotNil(t, o.Payment.PaidAt)
	})

	t.Run("paid payment cannot be cancelled", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		orders := new(MockOrderRepository)
		svc := NewService(payments, orders)

		p, _ := newPaidFixture(t, 300)
		payments.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.ChangeStatus(context.Background(), p.ID, ChangeStatusRequest{
			Status: "cancelled",
		})

		assert.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	payments := new(MockPaymentRepository)
	orders := new(MockOrderRepository)
	svc := NewService(payments, orders)

	p, _ := newPaidFixture(t, 100)

	payments.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "paid" && f.Filters["method"] == "card"
	})).Return([]payment.Payment{*p}, nil)
	payments.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	items, total, err := svc.List(context.Background(), PaymentListFilter{
		Status: "paid",
		Method: "card",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, p.PaymentNumber, items[0].PaymentNumber)
}
