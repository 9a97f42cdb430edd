package handlers

import (
	"net/http"
	"strconv"

	"velora-be/internal/middleware"
	"velora-be/internal/order"
	"velora-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	svc order.Service
	v   *validatorv10.Validate
}

func NewOrderHandler(svc order.Service, v *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{svc: svc, v: v}
}

func (h *OrderHandler) Register(r gin.IRoutes) {
	r.GET("/orders/:id", h.getOrder)
	r.POST("/orders/:id/cancel", h.cancelOrder)
}

func (h *OrderHandler) RegisterPublic(r gin.IRoutes) {
	r.GET("/track/:trackingNumber", h.track)
}

func (h *OrderHandler) RegisterAdmin(r gin.IRoutes) {
	r.GET("/orders", h.listOrders)
	r.POST("/orders/:id/status", h.updateStatus)
	r.POST("/orders/repair-tracking", h.repairTracking)
}

func (h *OrderHandler) getOrder(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	o, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrder(o))
}

// track is the public, unauthenticated lookup. It serves the privacy
// projection only.
func (h *OrderHandler) track(c *gin.Context) {
	pub, err := h.svc.GetByTrackingNumber(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]gin.H, 0, len(pub.Items))
	for _, item := range pub.Items {
		items = append(items, gin.H{
			"name":     item.Name,
			"color":    item.Color,
			"size":     item.Size,
			"quantity": item.Quantity,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"trackingNumber": pub.TrackingNumber,
		"status":         pub.Status,
		"items":          items,
		"city":           pub.City,
		"state":          pub.State,
		"events":         toEvents(pub.Events),
		"createdAt":      pub.CreatedAt,
	})
}

func (h *OrderHandler) cancelOrder(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.CancelOrderRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	err := h.svc.Cancel(c.Request.Context(), c.Param("id"), userID, middleware.IsAdmin(c), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (h *OrderHandler) listOrders(c *gin.Context) {
	filter := order.ListFilter{}

	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = n
		}
	}
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Page = n
		}
	}

	orders, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, toOrder(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) updateStatus(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	var tracking *order.TrackingInfo
	if req.Carrier != "" || req.TrackingID != "" {
		tracking = &order.TrackingInfo{
			Carrier:    req.Carrier,
			TrackingID: req.TrackingID,
			Notes:      req.Notes,
		}
	}

	err := h.svc.AppendStatus(
		c.Request.Context(),
		c.Param("id"),
		order.Status(req.Status),
		req.Message,
		"admin:"+userID,
		tracking,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *OrderHandler) repairTracking(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	flagged, err := h.svc.RepairMissingTracking(c.Request.Context(), "admin:"+userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flagged": flagged})
}

func toOrder(o *order.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, gin.H{
			"productId": item.ProductID,
			"name":      item.Name,
			"color":     item.Color,
			"size":      item.Size,
			"quantity":  item.Quantity,
			"price":     item.Price.StringFixed(2),
			"image":     item.ImageURL,
		})
	}

	return gin.H{
		"id":             o.ID,
		"status":         o.Status,
		"trackingNumber": o.TrackingNumber,
		"tracking": gin.H{
			"carrier":    o.Tracking.Carrier,
			"trackingId": o.Tracking.TrackingID,
			"notes":      o.Tracking.Notes,
		},
		"items": items,
		"payment": gin.H{
			"status":   o.Payment.Status,
			"amount":   o.Payment.Amount.StringFixed(2),
			"currency": o.Payment.Currency,
		},
		"shippingAddress": o.Shipping,
		"coupon":          o.CouponCode,
		"subtotal":        o.Subtotal.StringFixed(2),
		"discount":        o.Discount.StringFixed(2),
		"shippingFee":     o.ShippingFee.StringFixed(2),
		"total":           o.Total.StringFixed(2),
		"events":          toEvents(o.Events),
		"createdAt":       o.CreatedAt,
	}
}

func toEvents(events []order.TrackingEvent) []gin.H {
	out := make([]gin.H, 0, len(events))
	for _, ev := range events {
		out = append(out, gin.H{
			"status":    ev.Status,
			"message":   ev.Message,
			"updatedBy": ev.UpdatedBy,
			"timestamp": ev.CreatedAt,
		})
	}
	return out
}
