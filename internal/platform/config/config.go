package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	BaseCurrency  string
	IsProduction  bool
	EnableDBCheck bool
	RateLimitRPS  int
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Real environment variables win over .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BASE_CURRENCY", "IDR")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		BaseCurrency:  viper.GetString("BASE_CURRENCY"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		RateLimitRPS:  viper.GetInt("RATE_LIMIT_RPS"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}

	return cfg, nil
}
