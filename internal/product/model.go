package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []Variant
}

// Variant is uniquely keyed by (color, size) within a product.
type Variant struct {
	Color string
	Size  string
	Stock int
}

// VariantKey identifies a variant within a product.
type VariantKey struct {
	Color string
	Size  string
}
