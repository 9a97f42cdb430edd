package validation

// VariantRequest is the nested variant shape.
type VariantRequest struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// AddCartItemRequest accepts the nested variant object or the legacy
// flat color/size fields older clients still send.
type AddCartItemRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Variant   VariantRequest `json:"variant"`
	Color     string         `json:"color"`
	Size      string         `json:"size"`
	Quantity  int            `json:"quantity" binding:"required,min=1"`
}

type UpdateCartQuantityRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Variant   VariantRequest `json:"variant"`
	Color     string         `json:"color"`
	Size      string         `json:"size"`
	Quantity  int            `json:"quantity" binding:"required,min=1"`
}

type RemoveCartItemRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Variant   VariantRequest `json:"variant"`
	Color     string         `json:"color"`
	Size      string         `json:"size"`
}

// ShippingAddressRequest: only name, email and phone are mandatory at
// initiation; the postal address may follow later.
type ShippingAddressRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

type InitiateCheckoutRequest struct {
	CouponCode string                 `json:"couponCode"`
	Shipping   ShippingAddressRequest `json:"shipping" binding:"required"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	Message    string `json:"message"`
	Carrier    string `json:"carrier"`
	TrackingID string `json:"trackingId"`
	Notes      string `json:"notes"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type CreateCouponRequest struct {
	Code            string `json:"code" binding:"required"`
	DiscountPercent int    `json:"discountPercent" binding:"required,min=1,max=100"`
	MinOrderValue   string `json:"minOrderValue"`
}

type SetCouponActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type SetVariantStockRequest struct {
	Color string `json:"color" binding:"required"`
	Size  string `json:"size" binding:"required"`
	Stock *int   `json:"stock" binding:"required,min=0"`
}
