package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Postgres
	DatabaseURL string

	// JWT
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// Telegram
	BotToken string

	// Content API
	ContentAPIBase string

	// Payments
	KopecksPerStar     int64
	PaymentURLTemplate string

	// Admin
	AdminUsername     string
	AdminPasswordHash string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "lingvo-service"),
		JWTTTL:    getEnvDuration("JWT_TTL", 720*time.Hour),

		BotToken: getEnv("BOT_TOKEN", ""),

		ContentAPIBase: getEnv("CONTENT_API_BASE", "http://localhost:3000"),

		KopecksPerStar:     getEnvInt64("KOPECKS_PER_STAR", 0),
		PaymentURLTemplate: getEnv("PAYMENT_URL_TEMPLATE", "https://pay.example.com/checkout/{payment_id}?return={return_url}"),

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
