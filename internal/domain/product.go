package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Image         string           `json:"image,omitempty"`
	Color         string           `json:"color,omitempty"`
	Category      string           `json:"category,omitempty"`
	Availability  string           `json:"availability,omitempty"`
	ShippingArea  string           `json:"shipping_area,omitempty"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost,omitempty"`
	Rating        *decimal.Decimal `json:"rating,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Category     string
	Availability string
	Search       string
}

// ProductPatch carries the optional fields of a partial product update.
// Nil pointers leave the stored value untouched.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         *string          `json:"image"`
	Color         *string          `json:"color"`
	Category      *string          `json:"category"`
	Availability  *string          `json:"availability"`
	ShippingArea  *string          `json:"shipping_area"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost"`
	Rating        *decimal.Decimal `json:"rating"`
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.OriginalPrice == nil && p.Image == nil && p.Color == nil &&
		p.Category == nil && p.Availability == nil && p.ShippingArea == nil &&
		p.ShippingCost == nil && p.Rating == nil
}
