package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	MigrationsDir   string
	JWTAccessSecret string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CORSAllowAll    bool
	CORSOrigins     []string

	// External data providers
	WeatherAPIURL  string
	OverpassAPIURL string

	// Engine table overrides; empty means built-in defaults
	ScoringConfigPath string
	PricingConfigPath string

	// Redis powers the optional environmental snapshot cache and the
	// assessment refresh scheduler; empty disables both.
	RedisURL         string
	SnapshotCacheTTL time.Duration
	AsynqQueueName   string
	AsynqConcurrency int
	RefreshInterval  time.Duration

	// SMTP for the welcome email; email is disabled when the host is empty.
	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		JWTAccessSecret:   getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:    mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL:   mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		WeatherAPIURL:     getEnv("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		OverpassAPIURL:    getEnv("OVERPASS_API_URL", "https://overpass-api.de/api/interpreter"),
		ScoringConfigPath: getEnv("SCORING_CONFIG_PATH", ""),
		PricingConfigPath: getEnv("PRICING_CONFIG_PATH", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		SnapshotCacheTTL:  mustDuration(getEnv("SNAPSHOT_CACHE_TTL", "10m")),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		RefreshInterval:   mustDuration(getEnv("ASSESSMENT_REFRESH_INTERVAL", "24h")),
		EmailEnabled:      emailEnabled && smtpHost != "",
		SMTPHost:          smtpHost,
		SMTPPort:          mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Guesthouse Safety"),
		EmailFromAddress:  getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}

	return cfg, nil
}

// GetJWTAccessSecret implements httpkit.JWTConfig.
func (c *Config) GetJWTAccessSecret() string {
	return c.JWTAccessSecret
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
