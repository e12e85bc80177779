package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  port: "9000"
postgres:
  url: postgres://file
questions:
  cache_ttl: 2m
auth:
  secret: from-file
  issuer: quiz
log:
  level: debug
  pretty: true
`), 0o600)
	if err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Auth.Secret != "from-file" || !cfg.Log.Pretty {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.Postgres.URL != "postgres://env" || cfg.Redis.DB != 3 {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
	if got := TTLDuration(cfg.Questions.CacheTTL, time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("AUTH_SECRET", "env-secret")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected missing file to be tolerated: %v", err)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.Secret)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}
