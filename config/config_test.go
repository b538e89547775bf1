package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"TICKET_UNIT_PRICE", "CURRENCY", "ORDER_RECEIPT",
		"RAZORPAY_BASE_URL", "PROVIDER_TIMEOUT", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, int64(1000), cfg.TicketUnitPrice)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "receipt#1", cfg.OrderReceipt)
	assert.Equal(t, "https://api.razorpay.com", cfg.RazorpayBaseURL)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TICKET_UNIT_PRICE", "1500")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg := LoadConfig()

	assert.Equal(t, int64(1500), cfg.TicketUnitPrice)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestLoadConfig_BadDurationFallsBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "not-a-duration")

	cfg := LoadConfig()

	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
}
