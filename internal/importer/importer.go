package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductStore interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) error
}

// JSONImporter reads a catalog export (a JSON array of products) and
// inserts new products or updates existing ones, matched by name.
type JSONImporter struct {
	reader io.Reader
	store  ProductStore
}

func NewJSONImporter(r io.Reader, store ProductStore) *JSONImporter {
	return &JSONImporter{reader: r, store: store}
}

type jsonProduct struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         string           `json:"image"`
	Color         string           `json:"color"`
	Category      string           `json:"category"`
	Availability  string           `json:"availability"`
	ShippingArea  string           `json:"shipping_area"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost"`
	Rating        *decimal.Decimal `json:"rating"`
}

// Run decodes the export and upserts every entry. It returns the number
// of products written before the first error, if any.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var rows []jsonProduct
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	imported := 0
	for _, row := range rows {
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *JSONImporter) save(ctx context.Context, row jsonProduct) error {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return fmt.Errorf("product row missing name")
	}
	if row.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("product %q has non-positive price", name)
	}

	existing, err := i.findByName(ctx, name)
	if err != nil {
		return fmt.Errorf("look up product %q: %w", name, err)
	}

	if existing == nil {
		p := domain.Product{
			Name:          name,
			Description:   row.Description,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Image:         row.Image,
			Color:         row.Color,
			Category:      row.Category,
			Availability:  row.Availability,
			ShippingArea:  row.ShippingArea,
			ShippingCost:  row.ShippingCost,
			Rating:        row.Rating,
		}
		if _, err := i.store.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", name, err)
		}
		return nil
	}

	price := row.Price
	patch := domain.ProductPatch{
		Description:   &row.Description,
		Price:         &price,
		OriginalPrice: row.OriginalPrice,
		Image:         &row.Image,
		Color:         &row.Color,
		Category:      &row.Category,
		Availability:  &row.Availability,
		ShippingArea:  &row.ShippingArea,
		ShippingCost:  row.ShippingCost,
		Rating:        row.Rating,
	}
	if err := i.store.Update(ctx, existing.ID, patch); err != nil {
		return fmt.Errorf("update product %q: %w", name, err)
	}
	return nil
}

// findByName resolves an existing product by exact name. The listing
// filter matches substrings, so candidates are re-checked here.
func (i *JSONImporter) findByName(ctx context.Context, name string) (*domain.Product, error) {
	candidates, err := i.store.List(ctx, domain.ProductFilter{Search: name})
	if err != nil {
		return nil, err
	}
	for idx := range candidates {
		if strings.EqualFold(candidates[idx].Name, name) {
			return &candidates[idx], nil
		}
	}
	return nil, nil
}
