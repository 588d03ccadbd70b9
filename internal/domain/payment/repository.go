package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/shared"
)

// Repository defines persistence operations for the Payment aggregate
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, p *Payment) error
}
