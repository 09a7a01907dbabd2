package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars. It is populated
// once at startup and read-only afterwards.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	ActivityLogPath string
	CORSOrigins     []string
	RateBurst       int
	RatePerSec      int
	Demo            bool
}

// Load reads configuration from the environment and performs minimal
// validation. Demo mode runs against in-memory stores and does not require a
// database DSN.
func Load() (Config, error) {
	cfg := Config{
		Addr:            fallback(os.Getenv("COMPLAINTHUB_ADDR"), ":8080"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("COMPLAINTHUB_PG_DSN")),
		JWTSecret:       strings.TrimSpace(os.Getenv("COMPLAINTHUB_JWT_SECRET")),
		JWTIssuer:       fallback(os.Getenv("COMPLAINTHUB_JWT_ISSUER"), "complainthub"),
		ActivityLogPath: fallback(os.Getenv("COMPLAINTHUB_ACTIVITY_LOG"), "log.txt"),
		CORSOrigins:     parseCSV(fallback(os.Getenv("COMPLAINTHUB_CORS_ORIGINS"), "http://localhost:3000,http://localhost:3001")),
		RateBurst:       parseIntEnv("COMPLAINTHUB_RATE_BURST", 20),
		RatePerSec:      parseIntEnv("COMPLAINTHUB_RATE_PER_SEC", 10),
		Demo:            parseBoolEnv("COMPLAINTHUB_DEMO"),
	}

	hours := parseIntEnv("COMPLAINTHUB_JWT_TTL_HOURS", 24)
	if hours <= 0 {
		hours = 24
	}
	cfg.JWTTTL = time.Duration(hours) * time.Hour

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("COMPLAINTHUB_JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" && !cfg.Demo {
		return Config{}, errors.New("COMPLAINTHUB_PG_DSN is required unless COMPLAINTHUB_DEMO is set")
	}

	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func parseBoolEnv(key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return v
}
