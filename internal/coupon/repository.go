package coupon

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, params CreateParams) (*Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
	List(ctx context.Context) ([]Coupon, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `
	id,
	code,
	discount_percent,
	is_active,
	min_order_value,
	created_at,
	updated_at
`

// FindByCode matches case-insensitively; codes are stored uppercase.
func (r *repository) FindByCode(ctx context.Context, code string) (*Coupon, error) {
	c := &Coupon{}
	err := r.db.QueryRowContext(ctx, `
	SELECT `+couponColumns+`
	FROM coupons
	WHERE code = UPPER($1)
	`, code).Scan(
		&c.ID,
		&c.Code,
		&c.DiscountPercent,
		&c.IsActive,
		&c.MinOrderValue,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Coupon, error) {
	c := &Coupon{}
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO coupons (code, discount_percent, min_order_value)
	VALUES (UPPER($1), $2, $3)
	RETURNING `+couponColumns,
		params.Code, params.DiscountPercent, params.MinOrderValue,
	).Scan(
		&c.ID,
		&c.Code,
		&c.DiscountPercent,
		&c.IsActive,
		&c.MinOrderValue,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrCouponExists
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) SetActive(ctx context.Context, code string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE coupons
	SET is_active = $1, updated_at = NOW()
	WHERE code = UPPER($2)
	`, active, code)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+couponColumns+`
	FROM coupons
	ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(
			&c.ID,
			&c.Code,
			&c.DiscountPercent,
			&c.IsActive,
			&c.MinOrderValue,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}
