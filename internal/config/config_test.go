package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "velora")
	t.Setenv("DB_PORT", "5432")

	cfg := LoadConfig()

	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "1499", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "200", cfg.FlatShippingFee.String())
	assert.Equal(t, "450000", cfg.MaxOnlinePaymentAmount.String())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("PAYMENT_CURRENCY", "USD")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "50")
	t.Setenv("FLAT_SHIPPING_FEE", "7.99")
	t.Setenv("MAX_ONLINE_PAYMENT_AMOUNT", "10000")

	cfg := LoadConfig()

	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "50", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "7.99", cfg.FlatShippingFee.String())
	assert.Equal(t, "10000", cfg.MaxOnlinePaymentAmount.String())
}
