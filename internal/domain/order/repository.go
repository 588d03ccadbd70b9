package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/shared"
)

// Repository defines persistence operations for the Order aggregate
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
