package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string // "development" or "production"
	DBUrl       string
	// Auth: user tokens are verified against the identity provider's JWKS
	// (RS256); company tokens are signed locally with JWTSecret (HS256).
	JWTSecret string
	JWKSUrl   string
	// CORS
	AllowedOrigins []string
	// S3-compatible resume storage
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3PublicBaseURL   string // base URL returned resume URLs are built from
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting
	RateLimitWindowSeconds int
	RateLimitThreshold     int
	// Observability
	SentryDSN string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production where no .env exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWKSUrl:     strings.TrimRight(getEnv("JWKS_URL", ""), "/"),

		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174"),

		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Bucket:          getEnv("S3_BUCKET", "resumes"),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 30),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSUrl == "" {
		log.Println("WARNING: Neither JWT_SECRET nor JWKS_URL configured. All authenticated routes will reject requests.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// splitEnv returns a comma-separated environment variable as a slice
func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
