package payment

import (
	"context"
	"database/sql"

	"velora-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Record, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Record, error)
	// ClaimPaidTx transitions the record created -> paid inside the
	// caller's transaction, but only while it is still in the created
	// state. It reports whether this call won the claim; a false return
	// with nil error means another verification already settled the
	// record.
	ClaimPaidTx(ctx context.Context, tx *sql.Tx, gatewayOrderID, gatewayPaymentID, signature, orderID string) (bool, error)
	// MarkFailed transitions created -> failed. Records already settled
	// are left untouched.
	MarkFailed(ctx context.Context, gatewayOrderID, note string) error
	ListFailed(ctx context.Context) ([]Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const recordColumns = `
	id,
	user_id,
	order_id,
	provider,
	status,
	amount,
	currency,
	gateway_order_id,
	gateway_payment_id,
	gateway_signature,
	method,
	note,
	coupon_code,
	shipping,
	quote,
	created_at,
	updated_at
`

func scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	rec := &Record{}
	err := scanner.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.OrderID,
		&rec.Provider,
		&rec.Status,
		&rec.Amount,
		&rec.Currency,
		&rec.GatewayOrderID,
		&rec.GatewayPaymentID,
		&rec.GatewaySignature,
		&rec.Method,
		&rec.Note,
		&rec.CouponCode,
		&rec.ShippingJSON,
		&rec.QuoteJSON,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Record, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", params.UserID),
		zap.String("gateway_order_id", params.GatewayOrderID),
	)

	row := r.db.QueryRowContext(ctx, `
	INSERT INTO payments (
		user_id,
		provider,
		status,
		amount,
		currency,
		gateway_order_id,
		coupon_code,
		shipping,
		quote
	)
	VALUES ($1, $2, 'created', $3, $4, $5, $6, $7, $8)
	RETURNING `+recordColumns,
		params.UserID,
		params.Provider,
		params.Amount,
		params.Currency,
		params.GatewayOrderID,
		params.CouponCode,
		params.ShippingJSON,
		params.QuoteJSON,
	)

	rec, err := scanRecord(row)
	if err != nil {
		log.Error("failed to create payment record", zap.Error(err))
		return nil, err
	}

	log.Info("payment record created", zap.String("payment_id", rec.ID))
	return rec, nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+recordColumns+`
	FROM payments
	WHERE gateway_order_id = $1
	`, gatewayOrderID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repository) ClaimPaidTx(ctx context.Context, tx *sql.Tx, gatewayOrderID, gatewayPaymentID, signature, orderID string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
	UPDATE payments
	SET status = 'paid',
	    gateway_payment_id = $2,
	    gateway_signature = $3,
	    order_id = $4,
	    updated_at = NOW()
	WHERE gateway_order_id = $1 AND status = 'created'
	`, gatewayOrderID, gatewayPaymentID, signature, orderID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) MarkFailed(ctx context.Context, gatewayOrderID, note string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE payments
	SET status = 'failed',
	    note = $2,
	    updated_at = NOW()
	WHERE gateway_order_id = $1 AND status = 'created'
	`, gatewayOrderID, note)
	return err
}

// ListFailed feeds the manual reconciliation view for payments captured
// by the gateway that could not be fulfilled.
func (r *repository) ListFailed(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+recordColumns+`
	FROM payments
	WHERE status = 'failed'
	ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
