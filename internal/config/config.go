package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration required by the service.
type Config struct {
	ListenAddr string
	DBURL      string

	// RedisAddr empty means the in-process cache is used instead.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CacheTTL bounds how stale a cached summary may be.
	CacheTTL time.Duration

	// RateRPS <= 0 disables rate limiting.
	RateRPS   float64
	RateBurst int
}

// Load reads required values from environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		DBURL:         strings.TrimSpace(os.Getenv("DB_URL")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.DBURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	ttlSeconds, err := envInt("CACHE_TTL_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}
	if ttlSeconds <= 0 {
		return Config{}, errors.New("CACHE_TTL_SECONDS must be positive")
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.RateRPS, err = envFloat("RATE_RPS", 50); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = envInt("RATE_BURST", 100); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, nil
}

func envFloat(name string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	return f, nil
}
