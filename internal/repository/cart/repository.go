package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists per-user cart lines. Every method is a single
// statement; the order checkout transaction clears the cart through the
// order repository instead.
type Repository interface {
	Upsert(ctx context.Context, line domain.CartLine) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, lineID int64, quantity int) error
	Delete(ctx context.Context, userID, lineID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartView, error)
}
