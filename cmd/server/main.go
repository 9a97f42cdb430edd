package main

import (
	"log"

	"velora-be/internal/cart"
	"velora-be/internal/checkout"
	"velora-be/internal/config"
	"velora-be/internal/coupon"
	"velora-be/internal/db"
	"velora-be/internal/handlers"
	"velora-be/internal/logger"
	"velora-be/internal/order"
	"velora-be/internal/payment"
	"velora-be/internal/product"
	"velora-be/internal/validation"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	couponRepo := coupon.NewRepository(database)
	couponSvc := coupon.NewService(couponRepo)

	paymentRepo := payment.NewRepository(database)
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(
		database,
		cartRepo,
		productRepo,
		couponRepo,
		paymentRepo,
		orderRepo,
		gateway,
		checkout.Settings{
			Pricing: checkout.PricingConfig{
				FreeShippingThreshold: cfg.FreeShippingThreshold,
				FlatShippingFee:       cfg.FlatShippingFee,
			},
			MaxOnlinePaymentAmount: cfg.MaxOnlinePaymentAmount,
			Currency:               cfg.Currency,
		},
	)

	v := validation.New()

	router := handlers.NewRouter(handlers.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Cart:      handlers.NewCartHandler(cartSvc, v),
		Checkout:  handlers.NewCheckoutHandler(checkoutSvc, v),
		Order:     handlers.NewOrderHandler(orderSvc, v),
		Coupon:    handlers.NewCouponHandler(couponSvc, v),
		Admin:     handlers.NewAdminHandler(productSvc, paymentRepo, v),
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Printf("server running at http://localhost:%s/", port)
	log.Fatal(router.Run(":" + port))
}
