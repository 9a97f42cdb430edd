package handlers

import (
	"net/http"

	"velora-be/internal/metrics"
	"velora-be/internal/payment"
	"velora-be/internal/product"
	"velora-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// AdminHandler covers the back-office operations outside the order
// workflow: stock edits and the failed-payment reconciliation view.
type AdminHandler struct {
	products product.Service
	payments payment.Repository
	v        *validatorv10.Validate
}

func NewAdminHandler(products product.Service, payments payment.Repository, v *validatorv10.Validate) *AdminHandler {
	return &AdminHandler{products: products, payments: payments, v: v}
}

func (h *AdminHandler) RegisterAdmin(r gin.IRoutes) {
	r.PUT("/products/:id/stock", h.setVariantStock)
	r.GET("/payments/failed", h.listFailedPayments)
	r.GET("/metrics", h.paymentMetrics)
}

func (h *AdminHandler) paymentMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Snapshot())
}

func (h *AdminHandler) setVariantStock(c *gin.Context) {
	var req validation.SetVariantStockRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	err := h.products.SetVariantStock(c.Request.Context(), c.Param("id"), product.VariantKey{
		Color: req.Color,
		Size:  req.Size,
	}, *req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// listFailedPayments surfaces captured-but-unfulfilled payments for
// manual reconciliation.
func (h *AdminHandler) listFailedPayments(c *gin.Context) {
	records, err := h.payments.ListFailed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		entry := gin.H{
			"paymentId":      rec.ID,
			"userId":         rec.UserID,
			"gatewayOrderId": rec.GatewayOrderID,
			"amount":         rec.Amount.StringFixed(2),
			"currency":       rec.Currency,
			"updatedAt":      rec.UpdatedAt,
		}
		if rec.Note != nil {
			entry["note"] = *rec.Note
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}
