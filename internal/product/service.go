package product

import (
	"context"
	"errors"
)

// Service exposes the catalog read interface consumed by cart and
// checkout, plus the admin stock mutation.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	SetVariantStock(ctx context.Context, productID string, key VariantKey, stock int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, errors.New("product ID is required")
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *service) SetVariantStock(ctx context.Context, productID string, key VariantKey, stock int) error {
	if stock < 0 {
		return errors.New("stock must not be negative")
	}
	return s.repo.SetVariantStock(ctx, productID, key, stock)
}
