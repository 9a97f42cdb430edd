package payment

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// A record is created in StatusCreated and transitions exactly once to
// StatusPaid or StatusFailed. There are no other transitions.
const (
	StatusCreated Status = "created"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

type Record struct {
	ID               string
	UserID           string
	OrderID          *string
	Provider         string
	Status           Status
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID *string
	GatewaySignature *string
	Method           *string
	Note             *string
	CouponCode       *string
	ShippingJSON     json.RawMessage
	QuoteJSON        json.RawMessage
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateParams struct {
	UserID         string
	Provider       string
	Amount         decimal.Decimal
	Currency       string
	GatewayOrderID string
	CouponCode     *string
	ShippingJSON   json.RawMessage
	QuoteJSON      json.RawMessage
}
