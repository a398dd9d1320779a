// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"lockin/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithProvider sets the AI provider on the test config.
func WithProvider(provider string) ConfigOption {
	return func(c *config.Config) {
		c.AI.Provider = provider
	}
}

// WithDailyGoal overrides the daily goal minutes on the test config.
func WithDailyGoal(minutes int) ConfigOption {
	return func(c *config.Config) {
		c.Goals.DailyGoalMinutes = minutes
	}
}
