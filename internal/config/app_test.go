package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8090" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RateLimitRPS != 20 || cfg.Server.RateLimitBurst != 40 {
		t.Errorf("default rate limit = %.0f/%d", cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}
	if cfg.Redis.Enabled {
		t.Error("redis enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestLoad_FileLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uniscore.yaml")
	content := []byte(`server:
  addr: ":9000"
  rate_limit_rps: 5
  rate_limit_burst: 10
redis:
  enabled: true
  addr: "redis:6379"
  ttl_secs: 300
data:
  verified_path: /etc/uniscore/verified.yaml
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.RateLimitRPS != 5 {
		t.Errorf("rps = %.0f, want 5", cfg.Server.RateLimitRPS)
	}
	// Untouched fields keep their defaults.
	if cfg.Server.ShutdownTimeout() != 10*time.Second {
		t.Errorf("shutdown timeout = %s, want default 10s", cfg.Server.ShutdownTimeout())
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "redis:6379" || cfg.Redis.TTL() != 5*time.Minute {
		t.Errorf("redis config = %+v", cfg.Redis)
	}
	if cfg.Data.VerifiedPath != "/etc/uniscore/verified.yaml" {
		t.Errorf("verified path = %q", cfg.Data.VerifiedPath)
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("server: [not, a, map]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("server:\n  rate_limit_rps: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for negative rate limit")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for enabled redis without addr")
	}

	cfg = Default()
	cfg.Server.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty server addr")
	}
}
