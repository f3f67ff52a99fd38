package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	Environment        string
	JWTSecret          string
	TokenTTL           time.Duration
	AdminEmail         string
	AdminPasswordHash  string
	AdminTOTPSecret    string
	EmailFrom          string
	EmailFromName      string
	EmailEnabled       bool
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPUseTLS         bool
	RunMigrations      bool
	MaxBodyBytes       int64
	MaxUploadBytes     int64
	ParseWorkers       int
	DispatchWorkers    int
	RateLimitPerMinute int
	MetricsEnabled     bool
	LogLevel           string
	LogFormat          string
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Environment:        getEnv("APP_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 12*time.Hour),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTOTPSecret:    getEnv("ADMIN_TOTP_SECRET", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "급여담당자"),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1048576)),
		ParseWorkers:       getEnvInt("PARSE_WORKERS", 4),
		DispatchWorkers:    getEnvInt("DISPATCH_WORKERS", 4),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.AdminEmail == "" || c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be smaller than MAX_BODY_BYTES")
	}
	if c.ParseWorkers <= 0 || c.DispatchWorkers <= 0 {
		return fmt.Errorf("PARSE_WORKERS and DISPATCH_WORKERS must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
