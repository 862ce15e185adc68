package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type cartRepo interface {
	Upsert(ctx context.Context, line domain.CartLine) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, lineID int64, quantity int) error
	Delete(ctx context.Context, userID, lineID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartView, error)
}

type productGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service mutates and reads per-user cart lines.
type Service struct {
	repo     cartRepo
	products productGetter
}

func New(repo cartRepo, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// View is a user's cart plus its computed total.
type View struct {
	Items []domain.CartView `json:"items"`
	Total string            `json:"total"`
}

// Get returns the cart lines joined with current product data. An empty cart
// is a valid view, not an error.
func (s *Service) Get(ctx context.Context, userID int64) (*View, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartView{}
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &View{Items: items, Total: total.StringFixed(2)}, nil
}

// Add puts quantity units of a product into the user's cart. An existing
// line for the same (user, product) pair is incremented; size is kept from
// the first add and is not part of the merge key. The merge itself is a
// single atomic upsert, so concurrent adds never lose an increment.
func (s *Service) Add(ctx context.Context, userID, productID int64, quantity int, size string) (*domain.CartLine, error) {
	if userID == 0 || productID == 0 {
		return nil, fmt.Errorf("%w: userId and productId are required", domain.ErrValidation)
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}

	return s.repo.Upsert(ctx, domain.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
	})
}

// UpdateQuantity sets an explicit quantity on a cart line the user owns.
// Quantities below one are rejected; callers remove the line instead.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be greater than zero", domain.ErrValidation)
	}
	return s.repo.SetQuantity(ctx, userID, lineID, quantity)
}

// Remove deletes a single line the user owns. Removing an absent line is
// not an error.
func (s *Service) Remove(ctx context.Context, userID, lineID int64) error {
	return s.repo.Delete(ctx, userID, lineID)
}

// Clear drains the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
