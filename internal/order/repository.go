package order

import (
	"context"
	"database/sql"
	"time"

	"velora-be/internal/logger"

	"go.uber.org/zap"
)

type AppendEventParams struct {
	OrderID   string
	From      Status
	To        Status
	Message   string
	UpdatedBy string
	// Tracking is set when the transition into shipped carries the
	// carrier and tracking id.
	Tracking *TrackingInfo
}

type ListFilter struct {
	Status *Status
	Limit  int
	Page   int
}

type Repository interface {
	// CreateTx inserts the order, its item snapshots and the initial
	// tracking event inside the caller's transaction.
	CreateTx(ctx context.Context, tx *sql.Tx, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Order, error)
	// AppendEvent updates the denormalized status conditionally on the
	// expected current status and appends the event atomically.
	AppendEvent(ctx context.Context, params AppendEventParams) error
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	FindShippedMissingTracking(ctx context.Context) ([]Order, error)
	HasFlagEvent(ctx context.Context, orderID, message string) (bool, error)
	SetTracking(ctx context.Context, orderID string, tracking TrackingInfo) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id,
	user_id,
	status,
	tracking_number,
	carrier,
	tracking_id,
	notes,
	payment_status,
	payment_amount,
	currency,
	gateway_order_id,
	gateway_payment_id,
	coupon_code,
	subtotal,
	discount,
	shipping_fee,
	total,
	ship_name,
	ship_email,
	ship_phone,
	ship_address1,
	ship_address2,
	ship_city,
	ship_state,
	ship_postal_code,
	ship_country,
	created_at,
	updated_at
`

func scanOrder(scanner interface{ Scan(...any) error }) (*Order, error) {
	o := &Order{}
	err := scanner.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TrackingNumber,
		&o.Tracking.Carrier,
		&o.Tracking.TrackingID,
		&o.Tracking.Notes,
		&o.Payment.Status,
		&o.Payment.Amount,
		&o.Payment.Currency,
		&o.Payment.GatewayOrderID,
		&o.Payment.GatewayPaymentID,
		&o.CouponCode,
		&o.Subtotal,
		&o.Discount,
		&o.ShippingFee,
		&o.Total,
		&o.Shipping.Name,
		&o.Shipping.Email,
		&o.Shipping.Phone,
		&o.Shipping.AddressLine1,
		&o.Shipping.AddressLine2,
		&o.Shipping.City,
		&o.Shipping.State,
		&o.Shipping.PostalCode,
		&o.Shipping.Country,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) CreateTx(ctx context.Context, tx *sql.Tx, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateTx"),
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
	)

	now := time.Now()

	_, err := tx.ExecContext(ctx, `
	INSERT INTO orders (
		id, user_id, status, tracking_number,
		carrier, tracking_id, notes,
		payment_status, payment_amount, currency, gateway_order_id, gateway_payment_id,
		coupon_code, subtotal, discount, shipping_fee, total,
		ship_name, ship_email, ship_phone,
		ship_address1, ship_address2, ship_city, ship_state, ship_postal_code, ship_country,
		created_at, updated_at
	)
	VALUES (
		$1, $2, $3, $4,
		$5, $6, $7,
		$8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17,
		$18, $19, $20,
		$21, $22, $23, $24, $25, $26,
		$27, $27
	)`,
		o.ID, o.UserID, o.Status, o.TrackingNumber,
		o.Tracking.Carrier, o.Tracking.TrackingID, o.Tracking.Notes,
		o.Payment.Status, o.Payment.Amount, o.Payment.Currency, o.Payment.GatewayOrderID, o.Payment.GatewayPaymentID,
		o.CouponCode, o.Subtotal, o.Discount, o.ShippingFee, o.Total,
		o.Shipping.Name, o.Shipping.Email, o.Shipping.Phone,
		o.Shipping.AddressLine1, o.Shipping.AddressLine2, o.Shipping.City, o.Shipping.State, o.Shipping.PostalCode, o.Shipping.Country,
		now,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, name, color, size, quantity, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, o.ID, item.ProductID, item.Name, item.Color, item.Size, item.Quantity, item.Price, item.ImageURL)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO order_tracking_events (order_id, status, message, updated_by)
	VALUES ($1, $2, $3, $4)
	`, o.ID, StatusPlaced, "order placed", "system")
	if err != nil {
		log.Error("failed to insert initial tracking event", zap.Error(err))
		return err
	}

	log.Info("order created", zap.String("tracking_number", o.TrackingNumber))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+orderColumns+`
	FROM orders
	WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItemsAndEvents(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT `+orderColumns+`
	FROM orders
	WHERE tracking_number = $1
	`, trackingNumber)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItemsAndEvents(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItemsAndEvents(ctx context.Context, o *Order) error {
	itemRows, err := r.db.QueryContext(ctx, `
	SELECT product_id, name, color, size, quantity, price, image_url
	FROM order_items
	WHERE order_id = $1
	ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		if err := itemRows.Scan(
			&item.ProductID, &item.Name, &item.Color, &item.Size,
			&item.Quantity, &item.Price, &item.ImageURL,
		); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	eventRows, err := r.db.QueryContext(ctx, `
	SELECT id, order_id, status, message, updated_by, created_at
	FROM order_tracking_events
	WHERE order_id = $1
	ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var ev TrackingEvent
		if err := eventRows.Scan(
			&ev.ID, &ev.OrderID, &ev.Status, &ev.Message, &ev.UpdatedBy, &ev.CreatedAt,
		); err != nil {
			return err
		}
		o.Events = append(o.Events, ev)
	}
	return eventRows.Err()
}

func (r *repository) AppendEvent(ctx context.Context, params AppendEventParams) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guard against a concurrent transition: the status update only
	// lands while the order is still in the expected state.
	var res sql.Result
	if params.Tracking != nil {
		res, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, carrier = $2, tracking_id = $3, notes = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
		`, params.To, params.Tracking.Carrier, params.Tracking.TrackingID, params.Tracking.Notes,
			params.OrderID, params.From)
	} else {
		res, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		`, params.To, params.OrderID, params.From)
	}
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO order_tracking_events (order_id, status, message, updated_by)
	VALUES ($1, $2, $3, $4)
	`, params.OrderID, params.To, params.Message, params.UpdatedBy)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Status != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) FindShippedMissingTracking(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+orderColumns+`
	FROM orders
	WHERE status = 'shipped' AND (tracking_id IS NULL OR tracking_id = '')
	ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) HasFlagEvent(ctx context.Context, orderID, message string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
	SELECT EXISTS(
		SELECT 1 FROM order_tracking_events
		WHERE order_id = $1 AND message = $2
	)`, orderID, message).Scan(&exists)
	return exists, err
}

func (r *repository) SetTracking(ctx context.Context, orderID string, tracking TrackingInfo) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE orders
	SET carrier = $1, tracking_id = $2, notes = $3, updated_at = NOW()
	WHERE id = $4
	`, tracking.Carrier, tracking.TrackingID, tracking.Notes, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
