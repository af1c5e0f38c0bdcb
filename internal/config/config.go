package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Addr          string
	DBPath        string
	Environment   string
	AdminPassword string
	BaseURL       string
	LogLevel      string
	HTTPLogging   bool
	CacheTTL      time.Duration
	EmailEnabled  bool
	EmailFrom     string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPUseTLS    bool
}

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Addr:          getEnv("APP_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "peervote.db"),
		Environment:   getEnv("APP_ENV", "development"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		BaseURL:       getEnv("BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPLogging:   getEnvBool("HTTP_LOGGING", false),
		CacheTTL:      getEnvDuration("RESULT_CACHE_TTL", 5*time.Minute),
		EmailEnabled:  getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:     getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:    getEnvBool("SMTP_USE_TLS", true),
	}
}

// Development reports whether the service runs with development policies,
// which relaxes the nominator-existence check only.
func (c Config) Development() bool {
	return c.Environment == "development"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("RESULT_CACHE_TTL must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if c.Environment == "production" && strings.TrimSpace(c.AdminPassword) == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set in production")
	}
	return nil
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
