package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
)

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type catalog interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

// Service turns a checkout request into a durable order. Prices always come
// from the catalog at request time; anything the client claims about prices
// is ignored.
type Service struct {
	repo     orderRepo
	catalog  catalog
	producer *events.Producer
	logger   *log.Logger
}

func New(repo orderRepo, catalog catalog, producer *events.Producer, logger *log.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, producer: producer, logger: logger}
}

// LineInput is one requested order line. Any submitted price field is
// dropped during binding; only the product reference, quantity and size
// survive to this point.
type LineInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// CreateInput carries a checkout request for one user.
type CreateInput struct {
	Lines           []LineInput
	ShippingAddress string
	PaymentMethod   string
}

// Create validates the request, re-prices every line against the catalog,
// and persists the order atomically together with the cart-clear for the
// user. If any referenced product does not exist the whole operation aborts
// before anything is written; partial orders are never created.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*domain.Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: items are required", domain.ErrValidation)
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id is required", domain.ErrValidation)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", domain.ErrValidation)
		}

		product, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product %d: %w", line.ProductID, domain.ErrNotFound)
			}
			return nil, err
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		items = append(items, domain.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     line.Quantity,
			Size:         line.Size,
			Subtotal:     subtotal,
		})
	}

	created, err := s.repo.Create(ctx, &domain.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":     "order_created",
		"order_id": created.ID,
		"user_id":  created.UserID,
		"total":    created.TotalAmount.StringFixed(2),
	})
	return created, nil
}

// Get returns one order with its line items.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns a user's orders, newest first, with embedded items.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to any member of the status set. Transitions
// are administrative and unconstrained beyond enum membership.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return fmt.Errorf("%w: status must be one of pending, processing, shipped, delivered, cancelled", domain.ErrValidation)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "order_status_changed", "order_id": id, "status": status})
	return nil
}

func (s *Service) publish(ctx context.Context, event map[string]any) {
	if err := s.producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(event["order_id"]), event); err != nil && s.logger != nil {
		s.logger.Printf("order: publish event error=%v", err)
	}
}
