package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COMPLAINTHUB_JWT_SECRET", "test-secret")
	t.Setenv("COMPLAINTHUB_PG_DSN", "postgres://localhost/complainthub")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.JWTIssuer != "complainthub" {
		t.Fatalf("unexpected issuer: %s", cfg.JWTIssuer)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.JWTTTL)
	}
	if cfg.ActivityLogPath != "log.txt" {
		t.Fatalf("unexpected log path: %s", cfg.ActivityLogPath)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("COMPLAINTHUB_JWT_SECRET", "")
	t.Setenv("COMPLAINTHUB_PG_DSN", "postgres://localhost/complainthub")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestLoadDemoSkipsDSN(t *testing.T) {
	t.Setenv("COMPLAINTHUB_JWT_SECRET", "test-secret")
	t.Setenv("COMPLAINTHUB_PG_DSN", "")
	t.Setenv("COMPLAINTHUB_DEMO", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Demo {
		t.Fatal("expected demo mode")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COMPLAINTHUB_JWT_SECRET", "test-secret")
	t.Setenv("COMPLAINTHUB_PG_DSN", "postgres://localhost/complainthub")
	t.Setenv("COMPLAINTHUB_JWT_TTL_HOURS", "48")
	t.Setenv("COMPLAINTHUB_RATE_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTTTL != 48*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.JWTTTL)
	}
	if cfg.RateBurst != 5 {
		t.Fatalf("unexpected burst: %d", cfg.RateBurst)
	}
}
