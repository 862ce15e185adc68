package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches catalog products.
type Repository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) error
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
}
