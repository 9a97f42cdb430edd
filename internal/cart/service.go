package cart

import (
	"context"
	"errors"

	"velora-be/internal/logger"
	"velora-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveItem(ctx context.Context, params RemoveItemParams) error
	GetCart(ctx context.Context, userID string) ([]CartItem, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddItem upserts a cart line, merging quantity when the same
// product+variant is already in the cart. The merged quantity must be
// covered by live stock.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	key := params.Variant.Normalize()

	prod, err := s.productRepo.GetProduct(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	stock, err := s.productRepo.GetVariantStock(ctx, params.ProductID, key)
	if err != nil {
		if errors.Is(err, product.ErrVariantNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetItemByVariant(ctx, params.UserID, params.ProductID, key)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > stock {
		log.Warn("add rejected, not enough stock",
			zap.Int("requested", finalQty),
			zap.Int("available", stock),
		)
		return nil, &InsufficientStockError{
			Name:      prod.Name,
			Requested: finalQty,
			Available: stock,
		}
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, CreateItemParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Variant:   key,
			Quantity:  params.Quantity,
			Price:     prod.Price,
			Name:      prod.Name,
			ImageURL:  prod.ImageURL,
		})
	}

	return s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
}

// UpdateQuantity replaces the stored quantity. There is no clamping:
// when the requested quantity exceeds live stock the caller must retry
// with a valid value.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.UserID == "" {
		return errors.New("user ID is required")
	}
	if params.Quantity < 1 {
		return ErrInvalidQuantity
	}

	key := params.Variant.Normalize()

	stock, err := s.productRepo.GetVariantStock(ctx, params.ProductID, key)
	if err != nil {
		if errors.Is(err, product.ErrVariantNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	existing, err := s.repo.GetItemByVariant(ctx, params.UserID, params.ProductID, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVariantNotFound
	}

	if params.Quantity > stock {
		return &InsufficientStockError{
			Name:      existing.Name,
			Requested: params.Quantity,
			Available: stock,
		}
	}

	_, err = s.repo.UpdateItemQuantity(ctx, existing.ID, params.Quantity)
	return err
}

// RemoveItem deletes a cart line. Absence is not an error.
func (s *service) RemoveItem(ctx context.Context, params RemoveItemParams) error {
	if params.UserID == "" {
		return errors.New("user ID is required")
	}
	return s.repo.RemoveItem(ctx, params.UserID, params.ProductID, params.Variant.Normalize())
}

// GetCart returns the stored lines without re-validating stock;
// staleness is surfaced by the checkout path instead.
func (s *service) GetCart(ctx context.Context, userID string) ([]CartItem, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.repo.GetItems(ctx, userID)
}
