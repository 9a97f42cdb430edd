package handlers

import (
	"net/http"

	"velora-be/internal/coupon"
	"velora-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CouponHandler struct {
	svc coupon.Service
	v   *validatorv10.Validate
}

func NewCouponHandler(svc coupon.Service, v *validatorv10.Validate) *CouponHandler {
	return &CouponHandler{svc: svc, v: v}
}

func (h *CouponHandler) Register(r gin.IRoutes) {
	r.GET("/coupons/:code", h.lookup)
}

func (h *CouponHandler) RegisterAdmin(r gin.IRoutes) {
	r.GET("/coupons", h.list)
	r.POST("/coupons", h.create)
	r.PUT("/coupons/:code/active", h.setActive)
}

func (h *CouponHandler) lookup(c *gin.Context) {
	found, err := h.svc.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCoupon(found))
}

func (h *CouponHandler) list(c *gin.Context) {
	coupons, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(coupons))
	for i := range coupons {
		out = append(out, toCoupon(&coupons[i]))
	}
	c.JSON(http.StatusOK, gin.H{"coupons": out})
}

func (h *CouponHandler) create(c *gin.Context) {
	var req validation.CreateCouponRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	var minOrderValue *decimal.Decimal
	if req.MinOrderValue != "" {
		d, err := decimal.NewFromString(req.MinOrderValue)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minimum order value"})
			return
		}
		minOrderValue = &d
	}

	created, err := h.svc.Create(c.Request.Context(), coupon.CreateParams{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MinOrderValue:   minOrderValue,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCoupon(created))
}

func (h *CouponHandler) setActive(c *gin.Context) {
	var req validation.SetCouponActiveRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	if err := h.svc.SetActive(c.Request.Context(), c.Param("code"), *req.IsActive); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func toCoupon(cp *coupon.Coupon) gin.H {
	out := gin.H{
		"code":            cp.Code,
		"discountPercent": cp.DiscountPercent,
		"isActive":        cp.IsActive,
	}
	if cp.MinOrderValue != nil {
		out["minOrderValue"] = cp.MinOrderValue.StringFixed(2)
	}
	return out
}
