package checkout

import (
	"velora-be/internal/coupon"

	"github.com/shopspring/decimal"
)

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// Quote is persisted as a snapshot on the payment record at initiation
// and replayed verbatim at finalization, so a coupon edited in between
// cannot skew the stored order breakdown away from the captured amount.
type Quote struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"couponCode,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// ComputeQuote prices an order from its live subtotal: coupon discount,
// then flat shipping waived once the discounted subtotal clears the
// free-shipping threshold. All amounts are rounded to two decimals.
func ComputeQuote(subtotal decimal.Decimal, c *coupon.Coupon, cfg PricingConfig) (Quote, error) {
	q := Quote{Subtotal: subtotal.Round(2)}

	if c != nil {
		if c.MinOrderValue != nil && subtotal.LessThan(*c.MinOrderValue) {
			return Quote{}, coupon.ErrMinimumNotMet
		}
		q.CouponCode = c.Code
		q.Discount = subtotal.
			Mul(decimal.NewFromInt(int64(c.DiscountPercent))).
			Div(hundred).
			Round(2)
	}

	discounted := q.Subtotal.Sub(q.Discount)

	if discounted.GreaterThan(cfg.FreeShippingThreshold) {
		q.Shipping = decimal.Zero
	} else {
		q.Shipping = cfg.FlatShippingFee
	}

	q.Total = discounted.Add(q.Shipping).Round(2)
	return q, nil
}
