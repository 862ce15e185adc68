package order

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists orders. Create is the only multi-statement write in
// the system: header, line items and the owner's cart-clear commit or roll
// back as one unit.
type Repository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
