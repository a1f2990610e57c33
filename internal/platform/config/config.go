package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	AdminAPIKey   string
	MistralAPIKey string
	SerperAPIKey  string
	ProfileAPIURL string

	RateLimitDailyLimit int64
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "perseval"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		AdminAPIKey:   strings.TrimSpace(os.Getenv("ADMIN_API_KEY")),
		MistralAPIKey: strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),
		SerperAPIKey:  strings.TrimSpace(os.Getenv("SERPER_API_KEY")),
		ProfileAPIURL: strings.TrimSpace(os.Getenv("PROFILE_API_URL")),

		RateLimitDailyLimit: envInt64("RATE_LIMIT_DAILY_LIMIT", 0),
	}, nil
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
