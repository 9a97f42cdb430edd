package handlers

import (
	"net/http"

	"velora-be/internal/checkout"
	"velora-be/internal/middleware"
	"velora-be/internal/order"
	"velora-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	svc checkout.Service
	v   *validatorv10.Validate
}

func NewCheckoutHandler(svc checkout.Service, v *validatorv10.Validate) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, v: v}
}

func (h *CheckoutHandler) Register(r gin.IRoutes) {
	r.POST("/checkout", h.initiate)
	r.POST("/checkout/verify", h.verify)
}

func (h *CheckoutHandler) initiate(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.InitiateCheckoutRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	result, err := h.svc.Initiate(c.Request.Context(), checkout.InitiateParams{
		UserID:     userID,
		CouponCode: req.CouponCode,
		Shipping: order.ShippingAddress{
			Name:         req.Shipping.Name,
			Email:        req.Shipping.Email,
			Phone:        req.Shipping.Phone,
			AddressLine1: req.Shipping.AddressLine1,
			AddressLine2: req.Shipping.AddressLine2,
			City:         req.Shipping.City,
			State:        req.Shipping.State,
			PostalCode:   req.Shipping.PostalCode,
			Country:      req.Shipping.Country,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"paymentId":      result.PaymentID,
		"gatewayOrderId": result.GatewayOrderID,
		"amount":         result.Amount.StringFixed(2),
		"amountMinor":    result.AmountMinor,
		"currency":       result.Currency,
		"keyId":          result.KeyID,
		"quote": gin.H{
			"subtotal": result.Quote.Subtotal.StringFixed(2),
			"discount": result.Quote.Discount.StringFixed(2),
			"shipping": result.Quote.Shipping.StringFixed(2),
			"total":    result.Quote.Total.StringFixed(2),
			"coupon":   result.Quote.CouponCode,
		},
	})
}

func (h *CheckoutHandler) verify(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.VerifyPaymentRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	result, err := h.svc.Verify(c.Request.Context(), checkout.VerifyParams{
		UserID:           userID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"orderId":        result.OrderID,
		"trackingNumber": result.TrackingNumber,
	})
}
