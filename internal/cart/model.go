package cart

import (
	"time"

	"velora-be/internal/product"

	"github.com/shopspring/decimal"
)

// CartItem is a per-user cart line. Price, name and image are snapshots
// captured at add-time; checkout recomputes from live catalog data.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Variant   product.VariantKey
	Quantity  int
	Price     decimal.Decimal
	Name      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantRef accepts both the current nested shape and the legacy flat
// color/size fields still sent by older clients.
type VariantRef struct {
	Color string
	Size  string

	LegacyColor string
	LegacySize  string
}

// Normalize resolves the legacy shape into a single VariantKey. The
// nested fields win when both are present.
func (v VariantRef) Normalize() product.VariantKey {
	key := product.VariantKey{Color: v.Color, Size: v.Size}
	if key.Color == "" {
		key.Color = v.LegacyColor
	}
	if key.Size == "" {
		key.Size = v.LegacySize
	}
	return key
}

type AddItemParams struct {
	UserID    string
	ProductID string
	Variant   VariantRef
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID    string
	ProductID string
	Variant   VariantRef
	Quantity  int
}

type RemoveItemParams struct {
	UserID    string
	ProductID string
	Variant   VariantRef
}

type CreateItemParams struct {
	UserID    string
	ProductID string
	Variant   product.VariantKey
	Quantity  int
	Price     decimal.Decimal
	Name      string
	ImageURL  string
}
