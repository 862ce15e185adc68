package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
	productrepo "storefront/internal/repository/product"
)

// Service exposes catalog reads and admin-side product maintenance. It is
// the sole price authority: order creation prices every line through Get.
type Service struct {
	repo     productrepo.Repository
	producer *events.Producer
	logger   *log.Logger
}

func New(repo productrepo.Repository, producer *events.Producer, logger *log.Logger) *Service {
	return &Service{repo: repo, producer: producer, logger: logger}
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// CreateInput mirrors the product creation payload. Name and price are
// required; everything else is optional.
type CreateInput struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         string           `json:"image"`
	Color         string           `json:"color"`
	Category      string           `json:"category"`
	Availability  string           `json:"availability"`
	ShippingArea  string           `json:"shipping_area"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost"`
	Rating        *decimal.Decimal `json:"rating"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: name and price are required", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, domain.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		Color:         in.Color,
		Category:      in.Category,
		Availability:  in.Availability,
		ShippingArea:  in.ShippingArea,
		ShippingCost:  in.ShippingCost,
		Rating:        in.Rating,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, map[string]any{"type": "product_created", "product_id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch domain.ProductPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "product_updated", "product_id": id})
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, map[string]any{"type": "product_deleted", "product_id": id})
	return nil
}

// publish is best-effort: a broker outage must never fail a catalog write.
func (s *Service) publish(ctx context.Context, event map[string]any) {
	if err := s.producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(event["product_id"]), event); err != nil && s.logger != nil {
		s.logger.Printf("catalog: publish event error=%v", err)
	}
}
