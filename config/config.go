// Package config resolves server settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultCacheTTL = 5 * time.Minute
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// Config holds everything the server reads from its environment.
type Config struct {
	// JuliaBin overrides interpreter discovery (JULIA_BIN).
	JuliaBin string
	// ProjectPath activates a Julia project for every invocation
	// (JULIA_PROJECT_PATH).
	ProjectPath string
	// CacheTTL bounds cached response lifetime (JULIADOC_CACHE_TTL,
	// Go duration syntax).
	CacheTTL time.Duration
	// Timeout bounds each interpreter invocation (JULIADOC_TIMEOUT,
	// Go duration syntax).
	Timeout time.Duration
	// LogLevel is a zap level name (JULIADOC_LOG_LEVEL).
	LogLevel string
}

// FromEnv reads the environment, applying defaults for unset variables.
// Malformed durations are rejected rather than silently defaulted.
func FromEnv() (Config, error) {
	cfg := Config{
		JuliaBin:    os.Getenv("JULIA_BIN"),
		ProjectPath: os.Getenv("JULIA_PROJECT_PATH"),
		CacheTTL:    DefaultCacheTTL,
		Timeout:     DefaultTimeout,
		LogLevel:    DefaultLogLevel,
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("JULIADOC_CACHE_TTL", DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = durationEnv("JULIADOC_TIMEOUT", DefaultTimeout); err != nil {
		return Config{}, err
	}
	if level := os.Getenv("JULIADOC_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parsing %s: duration must be positive, got %s", name, d)
	}
	return d, nil
}
