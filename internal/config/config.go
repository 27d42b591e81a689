package config

import (
	"fmt"
	"os"

	"github.com/Solvent24/odette-market/internal/pricing"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port string

	JWTSecret string

	GoEnv     string // dev/prod
	FEURL     string // storefront origin, for CORS
	UploadDir string // where product/category images land
	StaticURL string // public prefix the upload dir is served under

	// Keyed by currency code; the active policy follows the site settings.
	// Both constant sets observed in the storefront's two checkout paths
	// live here as defaults; deployments override via PRICING_* env vars.
	Pricing map[string]pricing.Policy
}

func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
		FEURL:     os.Getenv("FE_URL"),
		UploadDir: getenv("UPLOAD_DIR", "static/uploads"),
		StaticURL: getenv("STATIC_URL", "/static/uploads"),
		Pricing:   defaultPricing(),
	}

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	if err := applyPricingOverrides(cfg.Pricing); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// PolicyFor returns the pricing policy for a currency, falling back to RWF.
func (c Config) PolicyFor(currency string) pricing.Policy {
	if p, ok := c.Pricing[currency]; ok {
		return p
	}
	return c.Pricing["RWF"]
}

func defaultPricing() map[string]pricing.Policy {
	return map[string]pricing.Policy{
		"RWF": {
			FreeShippingThreshold: decimal.NewFromInt(50000),
			ShippingFee:           decimal.NewFromInt(2000),
			TaxRate:               decimal.NewFromFloat(0.18),
		},
		"USD": {
			FreeShippingThreshold: decimal.NewFromInt(50),
			ShippingFee:           decimal.NewFromFloat(4.99),
			TaxRate:               decimal.NewFromFloat(0.08),
		},
	}
}

// PRICING_<CUR>_THRESHOLD / _FEE / _TAX_RATE override the defaults.
func applyPricingOverrides(policies map[string]pricing.Policy) error {
	for cur, p := range policies {
		var err error
		if p.FreeShippingThreshold, err = decimalEnv("PRICING_"+cur+"_THRESHOLD", p.FreeShippingThreshold); err != nil {
			return err
		}
		if p.ShippingFee, err = decimalEnv("PRICING_"+cur+"_FEE", p.ShippingFee); err != nil {
			return err
		}
		if p.TaxRate, err = decimalEnv("PRICING_"+cur+"_TAX_RATE", p.TaxRate); err != nil {
			return err
		}
		policies[cur] = p
	}
	return nil
}

func decimalEnv(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a decimal number: %w", key, err)
	}
	return d, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
