package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced         Status = "placed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// ShippingAddress holds the checkout address. Only name, email and
// phone are mandatory at initiation time.
type ShippingAddress struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Item is an immutable snapshot of a cart line at finalization time.
type Item struct {
	ProductID string
	Name      string
	Color     string
	Size      string
	Quantity  int
	Price     decimal.Decimal
	ImageURL  string
}

type PaymentInfo struct {
	Status           string
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID string
}

type TrackingInfo struct {
	Carrier    string
	TrackingID string
	Notes      string
}

// TrackingEvent is one entry of the append-only status history. The
// order's Status field is a denormalized projection of the latest event.
type TrackingEvent struct {
	ID        int64
	OrderID   string
	Status    Status
	Message   string
	UpdatedBy string
	CreatedAt time.Time
}

type Order struct {
	ID             string
	UserID         string
	Status         Status
	TrackingNumber string
	Tracking       TrackingInfo
	Items          []Item
	Payment        PaymentInfo
	Shipping       ShippingAddress
	CouponCode     *string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	ShippingFee    decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Events []TrackingEvent
}

// PublicOrder is the privacy projection served on the unauthenticated
// tracking endpoint: no payment identifiers, no street address.
type PublicOrder struct {
	TrackingNumber string
	Status         Status
	Items          []PublicItem
	City           string
	State          string
	Events         []TrackingEvent
	CreatedAt      time.Time
}

type PublicItem struct {
	Name     string
	Color    string
	Size     string
	Quantity int
}
