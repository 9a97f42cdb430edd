package handlers

import (
	"net/http"

	"velora-be/internal/cart"
	"velora-be/internal/middleware"
	"velora-be/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type CartHandler struct {
	svc cart.Service
	v   *validatorv10.Validate
}

func NewCartHandler(svc cart.Service, v *validatorv10.Validate) *CartHandler {
	return &CartHandler{svc: svc, v: v}
}

func (h *CartHandler) Register(r gin.IRoutes) {
	r.GET("/cart", h.getCart)
	r.POST("/cart", h.addItem)
	r.PUT("/cart", h.updateQuantity)
	r.DELETE("/cart", h.removeItem)
}

func (h *CartHandler) getCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	items, err := h.svc.GetCart(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toCartItems(items)})
}

func (h *CartHandler) addItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.AddCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Variant: cart.VariantRef{
			Color:       req.Variant.Color,
			Size:        req.Variant.Size,
			LegacyColor: req.Color,
			LegacySize:  req.Size,
		},
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCartItem(*item))
}

func (h *CartHandler) updateQuantity(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.UpdateCartQuantityRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	err := h.svc.UpdateQuantity(c.Request.Context(), cart.UpdateQuantityParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Variant: cart.VariantRef{
			Color:       req.Variant.Color,
			Size:        req.Variant.Size,
			LegacyColor: req.Color,
			LegacySize:  req.Size,
		},
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *CartHandler) removeItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req validation.RemoveCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.v); err != nil {
		return
	}

	err := h.svc.RemoveItem(c.Request.Context(), cart.RemoveItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Variant: cart.VariantRef{
			Color:       req.Variant.Color,
			Size:        req.Variant.Size,
			LegacyColor: req.Color,
			LegacySize:  req.Size,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func toCartItem(item cart.CartItem) gin.H {
	return gin.H{
		"id":        item.ID,
		"productId": item.ProductID,
		"variant": gin.H{
			"color": item.Variant.Color,
			"size":  item.Variant.Size,
		},
		"quantity": item.Quantity,
		"price":    item.Price.StringFixed(2),
		"name":     item.Name,
		"image":    item.ImageURL,
	}
}

func toCartItems(items []cart.CartItem) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, toCartItem(item))
	}
	return out
}
