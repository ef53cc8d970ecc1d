package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.PoolSize != 20 {
		t.Errorf("expected default pool size 20, got %d", cfg.Database.PoolSize)
	}
	if cfg.Redis.CacheTTL != 10*time.Minute {
		t.Errorf("expected default cache TTL 10m, got %s", cfg.Redis.CacheTTL)
	}
	if cfg.Data.WatchLogPath == "" {
		t.Error("expected a default watch log path")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RECSYS_SERVER_PORT", "9999")
	t.Setenv("RECSYS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env override port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override level debug, got %s", cfg.Logging.Level)
	}
}

func TestAddr(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
}
