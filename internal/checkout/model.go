package checkout

import (
	"velora-be/internal/order"

	"github.com/shopspring/decimal"
)

type InitiateParams struct {
	UserID     string
	CouponCode string
	Shipping   order.ShippingAddress
}

// InitiateResult carries what the client-side payment widget needs.
type InitiateResult struct {
	PaymentID      string
	GatewayOrderID string
	Amount         decimal.Decimal
	AmountMinor    int64
	Currency       string
	KeyID          string
	Quote          Quote
}

type VerifyParams struct {
	UserID           string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type VerifyResult struct {
	OrderID        string
	TrackingNumber string
	// Replayed is set when a duplicate callback hit an already-paid
	// record; the original order is returned unchanged.
	Replayed bool
}
