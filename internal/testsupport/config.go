// Package testsupport provides shared helpers for package tests: seeded
// configurations with per-test temp directories, fixture files, and stub
// binaries.
package testsupport

import (
	"path/filepath"
	"testing"

	"shortreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "runs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LLM.APIKey = "test"
	cfg.Images.APIKey = "test"
	cfg.Speech.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithNtfyTopic points notifications at the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(c *config.Config) {
		c.Notifications.NtfyTopic = topic
	}
}

// WithMinCaptionSeconds overrides the caption minimum duration.
func WithMinCaptionSeconds(seconds float64) ConfigOption {
	return func(c *config.Config) {
		c.Render.MinCaptionSeconds = seconds
	}
}
