package app

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr    string
	DataDir     string
	DatabaseURL string
	SentryDSN   string
	LogLevel    string

	// Admin access
	AdminAPIKey string

	// JWT for admin endpoints
	JWTSecret string
	JWTExpiry time.Duration
}

func LoadConfigFromEnv() Config {
	jwtExpiry, err := time.ParseDuration(getenv("JWT_EXPIRY", "24h"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DataDir:     getenv("DATA_DIR", "./data"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		SentryDSN:   getenv("SENTRY_DSN", ""),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		// Admin access
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		// JWT for admin endpoints
		JWTSecret: os.Getenv("JWT_SECRET"), // Required for admin access - no fallback
		JWTExpiry: jwtExpiry,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
