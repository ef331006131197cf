package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PORT", "SCAN_SERVICE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "") // registers restore on cleanup
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ScanServiceURL != "http://localhost:9090" {
		t.Errorf("ScanServiceURL = %q", cfg.ScanServiceURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("PORT", "9999")
	t.Setenv("SCAN_SERVICE_URL", "http://scanner:9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://example/db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.ScanServiceURL != "http://scanner:9090" {
		t.Errorf("ScanServiceURL = %q", cfg.ScanServiceURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestGetEnvFallback(t *testing.T) {
	got := getEnv("TABSPLIT_TEST_UNSET_KEY", "fallback")
	if got != "fallback" {
		t.Errorf("getEnv() = %q, want fallback", got)
	}
}
