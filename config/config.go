package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Addr      string
	DSN       string
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() (*Config, error) {
	ttlStr := getEnv("TOKEN_TTL", "168h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, errors.New("invalid TOKEN_TTL format")
	}

	cfg := &Config{
		Addr:      getEnv("ADDR", ":3002"),
		DSN:       os.Getenv("DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  ttl,
	}

	if cfg.DSN == "" {
		return nil, errors.New("DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
