package handlers

import (
	"errors"
	"net/http"

	"velora-be/internal/cart"
	"velora-be/internal/checkout"
	"velora-be/internal/coupon"
	"velora-be/internal/logger"
	"velora-be/internal/order"
	"velora-be/internal/payment"
	"velora-be/internal/product"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps domain errors onto HTTP responses. Validation
// failures carry enough detail for the client to self-correct; the
// signature mismatch deliberately does not.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, cart.ErrInsufficientStock):
		writeStockError(c, err)

	case errors.Is(err, payment.ErrSignatureInvalid):
		// Security event: report generically, leak nothing.
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment verification failed"})

	case errors.Is(err, order.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, coupon.ErrCouponNotFound),
		errors.Is(err, payment.ErrRecordNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrVariantNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, product.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, coupon.ErrCouponExists),
		errors.Is(err, checkout.ErrPaymentFailed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, coupon.ErrCouponInactive),
		errors.Is(err, coupon.ErrMinimumNotMet),
		errors.Is(err, coupon.ErrInvalidDiscount),
		errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrPaymentLimitExceeded),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrTrackingRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func writeStockError(c *gin.Context, err error) {
	var shortfall *checkout.StockShortfallError
	if errors.As(err, &shortfall) {
		lines := make([]gin.H, 0, len(shortfall.Lines))
		for _, line := range shortfall.Lines {
			lines = append(lines, gin.H{
				"name":      line.Name,
				"requested": line.Requested,
				"available": line.Available,
			})
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": "insufficient stock",
			"items": lines,
		})
		return
	}

	var single *cart.InsufficientStockError
	if errors.As(err, &single) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"name":      single.Name,
			"requested": single.Requested,
			"available": single.Available,
		})
		return
	}

	c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
}
