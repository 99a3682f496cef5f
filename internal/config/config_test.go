package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_USER", "sakila")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "sakila")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://pelis.example.com")

	cfg := Load()
	if cfg.DBUser != "sakila" || cfg.DBPass != "secret" || cfg.DBHost != "db.internal" {
		t.Fatalf("db config = %+v", cfg)
	}
	if cfg.DBPort != "3306" {
		t.Fatalf("DBPort=%q; want default 3306", cfg.DBPort)
	}
	if cfg.Port != "8000" {
		t.Fatalf("Port=%q; want default 8000", cfg.Port)
	}
	want := []string{"http://localhost:3000", "https://pelis.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Fatalf("CORSOrigins=%v; want %v", cfg.CORSOrigins, want)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a ,, b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("splitList = %v", got)
	}
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache must default to enabled")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("TTL=%s; want 30s", cfg.TTL)
	}
	if cfg.Prefix != "cache" || cfg.MaxBodyBytes != 1048576 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadCacheConfig_Overrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("CACHE_ENABLED=false must disable the cache")
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL=%s; want 2m", cfg.TTL)
	}
}
