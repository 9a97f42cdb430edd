package coupon

import "errors"

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExists    = errors.New("coupon code already exists")
	ErrInvalidDiscount = errors.New("discount percent must be between 1 and 100")
	ErrMinimumNotMet   = errors.New("order value below coupon minimum")
)
