package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_BASE_URL", "API_TIMEOUT", "API_RETRIES", "LOW_STOCK_THRESHOLD", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("port: got %q", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("api base: got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("timeout: got %s", cfg.APITimeout)
	}
	if cfg.APIRetries != 0 || cfg.LowStockThreshold != 10 || cfg.CookieSecure {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://books.example/api/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_RETRIES", "2")
	t.Setenv("LOW_STOCK_THRESHOLD", "bogus")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg := Load()
	if cfg.APIBaseURL != "https://books.example/api" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second || cfg.APIRetries != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LowStockThreshold != 10 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.LowStockThreshold)
	}
	if !cfg.CookieSecure {
		t.Fatal("COOKIE_SECURE=yes should enable secure cookies")
	}
}

func TestMask(t *testing.T) {
	cases := map[string]string{"": "", "abc": "****", "supersecret": "su****et"}
	for in, want := range cases {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
