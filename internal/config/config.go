package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseURL string

	// HTTP
	HTTPHost string
	HTTPPort string

	// Security
	JWTSecret  string
	SessionTTL time.Duration

	// Credential windows
	OTPExpiry   time.Duration
	ResetExpiry time.Duration

	// Password reset link target
	ResetURLBase string

	// Email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// Environment
	Environment string
	LogLevel    string

	// Optional hardening: 0 disables throttling of OTP endpoints
	OTPRateLimitPerMinute int

	// Storage hygiene
	CleanupInterval time.Duration
}

// Load loads configuration from the environment, reading a local .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		HTTPHost:              getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		ResetURLBase:          getEnv("RESET_URL_BASE", "http://localhost:3000/reset-password"),
		SMTPHost:              getEnv("SMTP_HOST", "localhost"),
		SMTPPort:              getEnvInt("SMTP_PORT", 587),
		SMTPUser:              getEnv("SMTP_USER", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		EmailFrom:             getEnv("EMAIL_FROM", "noreply@example.com"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		OTPRateLimitPerMinute: getEnvInt("OTP_RATE_LIMIT_PER_MINUTE", 0),
	}

	// Parse durations
	sessionTTLMins := getEnvInt("SESSION_TTL_MINUTES", 60)
	cfg.SessionTTL = time.Duration(sessionTTLMins) * time.Minute

	otpExpiryMins := getEnvInt("OTP_EXPIRY_MINUTES", 5)
	cfg.OTPExpiry = time.Duration(otpExpiryMins) * time.Minute

	resetExpiryMins := getEnvInt("RESET_EXPIRY_MINUTES", 15)
	cfg.ResetExpiry = time.Duration(resetExpiryMins) * time.Minute

	cleanupIntervalMins := getEnvInt("CLEANUP_INTERVAL_MINUTES", 5)
	cfg.CleanupInterval = time.Duration(cleanupIntervalMins) * time.Minute

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}
