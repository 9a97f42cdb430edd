package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Defaults applied when the environment leaves site settings unset.
const (
	defaultFreeShippingThreshold = "1499"
	defaultFlatShippingFee       = "200"
	defaultMaxOnlinePayment      = "450000"
	defaultCurrency              = "INR"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	Currency               string
	FreeShippingThreshold  decimal.Decimal
	FlatShippingFee        decimal.Decimal
	MaxOnlinePaymentAmount decimal.Decimal
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		JWTSecret: os.Getenv("SECRET_KEY"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		Currency:               envOr("PAYMENT_CURRENCY", defaultCurrency),
		FreeShippingThreshold:  envDecimal("FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold),
		FlatShippingFee:        envDecimal("FLAT_SHIPPING_FEE", defaultFlatShippingFee),
		MaxOnlinePaymentAmount: envDecimal("MAX_ONLINE_PAYMENT_AMOUNT", defaultMaxOnlinePayment),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid decimal value for %s: %q", key, raw)
	}
	return d
}
