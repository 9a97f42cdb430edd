package handlers

import (
	"velora-be/internal/logger"
	"velora-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	JWTSecret string

	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Coupon   *CouponHandler
	Admin    *AdminHandler
}

// NewRouter assembles the HTTP surface: public tracking, authenticated
// storefront routes (checkout behind the strict rate tier), and the
// admin back-office.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.Auth(cfg.JWTSecret))

	public := r.Group("/", middleware.RateLimit())
	cfg.Order.RegisterPublic(public)
	cfg.Coupon.Register(public)

	authed := r.Group("/", middleware.RequireAuth(), middleware.RateLimit())
	cfg.Cart.Register(authed)
	cfg.Order.Register(authed)

	pay := r.Group("/", middleware.RequireAuth(), middleware.RateLimitStrict())
	cfg.Checkout.Register(pay)

	admin := r.Group("/admin", middleware.RequireAdmin(), middleware.RateLimit())
	cfg.Order.RegisterAdmin(admin)
	cfg.Coupon.RegisterAdmin(admin)
	cfg.Admin.RegisterAdmin(admin)

	return r
}
