package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID              string
	Code            string
	DiscountPercent int
	IsActive        bool
	MinOrderValue   *decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateParams struct {
	Code            string
	DiscountPercent int
	MinOrderValue   *decimal.Decimal
}
