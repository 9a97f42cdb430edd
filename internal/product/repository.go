package product

import (
	"context"
	"database/sql"
	"fmt"

	"velora-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetPrice(ctx context.Context, productID string) (decimal.Decimal, error)
	GetVariantStock(ctx context.Context, productID string, key VariantKey) (int, error)
	// DecrementStockTx conditionally decrements a variant's stock inside
	// the caller's transaction. It only succeeds when the current stock
	// covers the full quantity; otherwise it returns ErrInsufficientStock.
	DecrementStockTx(ctx context.Context, tx *sql.Tx, productID string, key VariantKey, quantity int) error
	SetVariantStock(ctx context.Context, productID string, key VariantKey, stock int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	p := &Product{}

	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, description, price, image_url, created_at, updated_at
	FROM products
	WHERE id = $1
	`, id)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT color, size, stock
	FROM variants
	WHERE product_id = $1
	ORDER BY color, size
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.Color, &v.Size, &v.Stock); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) GetPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT price FROM products WHERE id = $1`, productID,
	).Scan(&price)

	if err == sql.ErrNoRows {
		return decimal.Zero, ErrProductNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (r *repository) GetVariantStock(ctx context.Context, productID string, key VariantKey) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `
	SELECT stock FROM variants
	WHERE product_id = $1 AND color = $2 AND size = $3
	`, productID, key.Color, key.Size).Scan(&stock)

	if err == sql.ErrNoRows {
		return 0, ErrVariantNotFound
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}

func (r *repository) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID string, key VariantKey, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DecrementStockTx"),
		zap.String("product_id", productID),
		zap.String("color", key.Color),
		zap.String("size", key.Size),
		zap.Int("quantity", quantity),
	)

	res, err := tx.ExecContext(ctx, `
	UPDATE variants
	SET stock = stock - $1
	WHERE product_id = $2 AND color = $3 AND size = $4
	  AND stock >= $1
	`, quantity, productID, key.Color, key.Size)
	if err != nil {
		log.Error("stock decrement failed", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("stock decrement rejected")
		return fmt.Errorf("product %s (%s/%s): %w", productID, key.Color, key.Size, ErrInsufficientStock)
	}

	return nil
}

func (r *repository) SetVariantStock(ctx context.Context, productID string, key VariantKey, stock int) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE variants
	SET stock = $1
	WHERE product_id = $2 AND color = $3 AND size = $4
	`, stock, productID, key.Color, key.Size)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}
