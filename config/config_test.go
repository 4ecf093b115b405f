package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JULIA_BIN", "")
	t.Setenv("JULIA_PROJECT_PATH", "")
	t.Setenv("JULIADOC_CACHE_TTL", "")
	t.Setenv("JULIADOC_TIMEOUT", "")
	t.Setenv("JULIADOC_LOG_LEVEL", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.JuliaBin != "" || cfg.ProjectPath != "" {
		t.Errorf("expected empty interpreter settings, got %+v", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JULIA_BIN", "/opt/julia/bin/julia")
	t.Setenv("JULIA_PROJECT_PATH", "/work/proj")
	t.Setenv("JULIADOC_CACHE_TTL", "90s")
	t.Setenv("JULIADOC_TIMEOUT", "2m")
	t.Setenv("JULIADOC_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.JuliaBin != "/opt/julia/bin/julia" {
		t.Errorf("JuliaBin = %q", cfg.JuliaBin)
	}
	if cfg.ProjectPath != "/work/proj" {
		t.Errorf("ProjectPath = %q", cfg.ProjectPath)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestFromEnv_MalformedDuration(t *testing.T) {
	t.Setenv("JULIADOC_CACHE_TTL", "five minutes")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestFromEnv_NonPositiveDuration(t *testing.T) {
	t.Setenv("JULIADOC_CACHE_TTL", "")
	t.Setenv("JULIADOC_TIMEOUT", "-10s")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for negative duration")
	}
}
