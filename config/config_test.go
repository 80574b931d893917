package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.API.AuthBaseURL != "http://localhost:4000" {
		t.Errorf("API.AuthBaseURL = %q, want http://localhost:4000", cfg.API.AuthBaseURL)
	}
	if cfg.API.ListingsBaseURL != cfg.API.AuthBaseURL {
		t.Errorf("API.ListingsBaseURL = %q, want fallback to auth URL", cfg.API.ListingsBaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q, want localhost:6379", cfg.Redis.URI)
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("AUTH_API_URL", "https://api.example.com")
	t.Setenv("LISTINGS_API_URL", "https://listings.example.com")
	t.Setenv("REDIS_URI", "redis.internal:6380")
	t.Setenv("API_TIMEOUT", "5s")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.API.ListingsBaseURL != "https://listings.example.com" {
		t.Errorf("API.ListingsBaseURL = %q, want explicit value kept", cfg.API.ListingsBaseURL)
	}
	if cfg.Redis.URI != "redis.internal:6380" {
		t.Errorf("Redis.URI = %q, want redis.internal:6380", cfg.Redis.URI)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want 5s", cfg.API.Timeout)
	}
}

func TestSanitizeGuardsTimeout(t *testing.T) {
	cfg := AppConfig{API: APIConfig{Timeout: -1}}
	cfg.Sanitize()
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want clamped to 15s", cfg.API.Timeout)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse failed: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev = false, want true when NODE_ENV=development")
	}
}
