package coupon

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	// Lookup returns the coupon for a code, failing when it is absent or
	// inactive. Minimum-order-value enforcement is the caller's job.
	Lookup(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, params CreateParams) (*Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
	List(ctx context.Context) ([]Coupon, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Lookup(ctx context.Context, code string) (*Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}

	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrCouponInactive
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Coupon, error) {
	params.Code = strings.ToUpper(strings.TrimSpace(params.Code))
	if params.Code == "" {
		return nil, errors.New("coupon code is required")
	}
	if params.DiscountPercent < 1 || params.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	if params.MinOrderValue != nil && params.MinOrderValue.IsNegative() {
		return nil, errors.New("minimum order value must not be negative")
	}
	return s.repo.Create(ctx, params)
}

func (s *service) SetActive(ctx context.Context, code string, active bool) error {
	return s.repo.SetActive(ctx, code, active)
}

func (s *service) List(ctx context.Context) ([]Coupon, error) {
	return s.repo.List(ctx)
}
