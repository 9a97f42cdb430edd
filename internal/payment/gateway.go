package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayOrder is the gateway-side order handed to the client-side
// payment widget.
type GatewayOrder struct {
	ID       string
	Amount   int64 // minor units
	Currency string
	Receipt  string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error)
	// VerifySignature checks the keyed hash the widget returns after
	// capture. A mismatch is a security event.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error
	// KeyID is the public key the client widget needs.
	KeyID() string
}
