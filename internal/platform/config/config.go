package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// BaseCurrency* configure the bootstrap reference currency used for
	// conversion fallbacks and derived balances.
	BaseCurrencyCode string
	BaseCurrencyName string

	// PriceFetchTimeout bounds each outbound request of the price backends.
	PriceFetchTimeout time.Duration

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BASE_CURRENCY_CODE", "EUR")
	viper.SetDefault("BASE_CURRENCY_NAME", "Euro")
	viper.SetDefault("PRICE_FETCH_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BaseCurrencyCode = viper.GetString("BASE_CURRENCY_CODE")
	cfg.BaseCurrencyName = viper.GetString("BASE_CURRENCY_NAME")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	timeoutStr := viper.GetString("PRICE_FETCH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for PRICE_FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.PriceFetchTimeout = timeout

	return cfg, nil
}
