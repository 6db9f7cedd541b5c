package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/analytics")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RateRPS != 50 || cfg.RateBurst != 100 {
		t.Fatalf("rate defaults = %v/%v", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/analytics")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("RATE_RPS", "5.5")
	t.Setenv("RATE_BURST", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.RateRPS != 5.5 || cfg.RateBurst != 10 {
		t.Fatalf("rate = %v/%v", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestLoad_RejectsBadNumbers(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/analytics")
	t.Setenv("CACHE_TTL_SECONDS", "sixty")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric CACHE_TTL_SECONDS")
	}

	t.Setenv("CACHE_TTL_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero TTL")
	}
}
