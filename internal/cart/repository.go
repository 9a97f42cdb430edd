package cart

import (
	"context"
	"database/sql"

	"velora-be/internal/logger"
	"velora-be/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	GetItemByVariant(ctx context.Context, userID, productID string, key product.VariantKey) (*CartItem, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartItemID string, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, userID, productID string, key product.VariantKey) error
	GetItems(ctx context.Context, userID string) ([]CartItem, error)
	// ClearCartTx deletes all of a user's cart lines inside the caller's
	// transaction; finalization uses it so the cart only empties when the
	// order commits.
	ClearCartTx(ctx context.Context, tx *sql.Tx, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cartColumns = `
	id,
	user_id,
	product_id,
	color,
	size,
	quantity,
	price,
	name,
	image_url,
	created_at,
	updated_at
`

func scanItem(row *sql.Row) (*CartItem, error) {
	item := &CartItem{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Variant.Color,
		&item.Variant.Size,
		&item.Quantity,
		&item.Price,
		&item.Name,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) GetItemByVariant(ctx context.Context, userID, productID string, key product.VariantKey) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+cartColumns+`
	FROM carts
	WHERE user_id = $1 AND product_id = $2 AND color = $3 AND size = $4
	`, userID, productID, key.Color, key.Size)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, params CreateItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	row := r.db.QueryRowContext(ctx, `
	INSERT INTO carts (
		user_id,
		product_id,
		color,
		size,
		quantity,
		price,
		name,
		image_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING `+cartColumns,
		params.UserID,
		params.ProductID,
		params.Variant.Color,
		params.Variant.Size,
		params.Quantity,
		params.Price,
		params.Name,
		params.ImageURL,
	)

	item, err := scanItem(row)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.String("cart_item_id", item.ID))
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartItemID string, quantity int) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
	UPDATE carts
	SET quantity = $1,
	    updated_at = NOW()
	WHERE id = $2
	RETURNING `+cartColumns,
		quantity, cartItemID)

	return scanItem(row)
}

// RemoveItem is idempotent: deleting an absent line is not an error.
func (r *repository) RemoveItem(ctx context.Context, userID, productID string, key product.VariantKey) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM carts
	WHERE user_id = $1 AND product_id = $2 AND color = $3 AND size = $4
	`, userID, productID, key.Color, key.Size)
	return err
}

func (r *repository) GetItems(ctx context.Context, userID string) ([]CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+cartColumns+`
	FROM carts
	WHERE user_id = $1
	ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Variant.Color,
			&item.Variant.Size,
			&item.Quantity,
			&item.Price,
			&item.Name,
			&item.ImageURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) ClearCartTx(ctx context.Context, tx *sql.Tx, userID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
