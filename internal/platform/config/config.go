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

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// TxnTimeout bounds the atomic create/complete/cancel/close units of work.
	// Generous on purpose: the multi-step read-modify-write must not abort
	// spuriously under moderate load.
	TxnTimeout time.Duration

	// LowStockThreshold marks products as "low stock" on the dashboard.
	LowStockThreshold int64

	// RedisAddr enables the reporting cache when set; empty disables it.
	RedisAddr string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "pos-backend")
	viper.SetDefault("TXN_TIMEOUT", "20s")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("REDIS_ADDR", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	txnTimeoutStr := viper.GetString("TXN_TIMEOUT")
	txnTimeout, err := time.ParseDuration(txnTimeoutStr)
	if err != nil || txnTimeout <= 0 {
		txnTimeout = 20 * time.Second
		log.Printf("Warning: Invalid value for TXN_TIMEOUT ('%s'). Defaulting to %s.\n", txnTimeoutStr, txnTimeout)
	}
	cfg.TxnTimeout = txnTimeout

	cfg.LowStockThreshold = viper.GetInt64("LOW_STOCK_THRESHOLD")
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 10
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")

	return cfg, nil
}
