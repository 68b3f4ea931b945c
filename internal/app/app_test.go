package app

import (
	"context"
	"testing"

	"github.com/law-makers/websearch/internal/config"
)

func TestNew_RequiresConfig(t *testing.T) {
	if _, err := New(context.Background(), nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNew_WiresDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.Proxy = "http://127.0.0.1:1,http://127.0.0.1:2"

	a, err := New(context.Background(), cfg, WithHeaders(map[string]string{"X-Test": "1"}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close(context.Background())

	if a.Router == nil || a.Fetcher == nil || a.HTTPClient == nil {
		t.Fatal("Expected router, fetcher and client to be initialized")
	}
	if a.RateLimiter == nil {
		t.Error("Expected rate limiter with default config")
	}
	if a.Proxies.Len() != 2 {
		t.Errorf("Expected 2 proxies, got %d", a.Proxies.Len())
	}
}

func TestNew_RateLimitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimitRPS = 0

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.RateLimiter != nil {
		t.Error("Expected no rate limiter when rate is 0")
	}
	if a.Proxies.Len() != 0 {
		t.Error("Expected empty proxy pool")
	}
}
