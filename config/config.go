package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"delivery-checkout-system/pricing"
)

// Config is the environment-driven configuration shared by the worker and
// starter binaries.
type Config struct {
	TemporalAddress  string        `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TaskQueue        string        `envconfig:"TASK_QUEUE" default:"checkout-session-queue"`
	OrderGatewayURL  string        `envconfig:"ORDER_GATEWAY_URL" default:"http://localhost:8081"`
	EncryptionKey    string        `envconfig:"ENCRYPTION_KEY" default:""`
	DeliveryFee      string        `envconfig:"DELIVERY_FEE" default:"4.99"`
	TaxRate          string        `envconfig:"TAX_RATE" default:"0.13"`
	PromoCatalogPath string        `envconfig:"PROMO_CATALOG_PATH" default:""`
	SessionTimeout   time.Duration `envconfig:"CHECKOUT_SESSION_TIMEOUT" default:"30m"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FeeSchedule parses the configured fee values. The fee schedule is pure
// configuration input; it is never derived from order contents.
func (c *Config) FeeSchedule() (pricing.FeeSchedule, error) {
	fee, err := decimal.NewFromString(c.DeliveryFee)
	if err != nil {
		return pricing.FeeSchedule{}, fmt.Errorf("invalid DELIVERY_FEE %q: %w", c.DeliveryFee, err)
	}
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return pricing.FeeSchedule{}, fmt.Errorf("invalid TAX_RATE %q: %w", c.TaxRate, err)
	}
	if fee.IsNegative() {
		return pricing.FeeSchedule{}, fmt.Errorf("DELIVERY_FEE must be non-negative, got %s", fee)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return pricing.FeeSchedule{}, fmt.Errorf("TAX_RATE must be in [0,1), got %s", rate)
	}
	return pricing.FeeSchedule{DeliveryFee: fee, TaxRate: rate}, nil
}
