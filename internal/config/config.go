package config

import (
	"github.com/spf13/viper"
)

// Config holds runtime settings. Every field maps to an env var, which may
// also be set in an optional .env file next to the binary.
type Config struct {
	Env     string `mapstructure:"APP_ENV"` // development | production
	LogFile string `mapstructure:"LOG_FILE"`

	// Persistence
	DataFile    string `mapstructure:"DATA_FILE"`
	LoadOnStart bool   `mapstructure:"LOAD_ON_START"`

	// Business
	StrictCheckout    bool   `mapstructure:"STRICT_CHECKOUT"`
	LowStockThreshold int    `mapstructure:"LOW_STOCK_THRESHOLD"`
	BestSellersLimit  int    `mapstructure:"BEST_SELLERS_LIMIT"`
	Currency          string `mapstructure:"CURRENCY"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_FILE", "pos.log")
	v.SetDefault("DATA_FILE", "sales_data.json")
	v.SetDefault("LOAD_ON_START", true)
	v.SetDefault("STRICT_CHECKOUT", true)
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("BEST_SELLERS_LIMIT", 10)
	v.SetDefault("CURRENCY", "EGP")

	// Optional .env file for local use, does not fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Development reports whether APP_ENV asks for development behavior.
func (c *Config) Development() bool {
	return c.Env == "development"
}
