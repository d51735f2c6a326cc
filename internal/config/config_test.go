package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg := Load()
	if cfg.CatalogSource != CatalogSourceFile {
		t.Errorf("CatalogSource = %q, want %q", cfg.CatalogSource, CatalogSourceFile)
	}
	if cfg.SessionTTL != 120*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "SQLite")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")
	t.Setenv("START_RATE_LIMIT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	if cfg.CatalogSource != CatalogSourceSQLite {
		t.Errorf("CatalogSource = %q", cfg.CatalogSource)
	}
	if cfg.CatalogTimeout != 3*time.Second {
		t.Errorf("CatalogTimeout = %v", cfg.CatalogTimeout)
	}
	if cfg.StartRateLimit != 30 {
		t.Errorf("StartRateLimit = %d, want fallback 30", cfg.StartRateLimit)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}
