package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate default config: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if cfg.Render.Width != defaultRenderWidth || cfg.Render.Height != defaultRenderHeight {
		t.Fatalf("unexpected render defaults: %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Transcriber.Command != defaultTranscriberCommand {
		t.Fatalf("unexpected transcriber command %q", cfg.Transcriber.Command)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "runs") + `"
state_dir = "` + filepath.Join(dir, "state") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[render]
frame_rate = 24
min_caption_seconds = 0.8

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Render.FrameRate != 24 {
		t.Fatalf("frame_rate = %d, want 24", cfg.Render.FrameRate)
	}
	if cfg.Render.MinCaptionSeconds != 0.8 {
		t.Fatalf("min_caption_seconds = %g, want 0.8", cfg.Render.MinCaptionSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Speech.Voice != defaultSpeechVoice {
		t.Fatalf("speech voice = %q, want default", cfg.Speech.Voice)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[render]
width = 1081
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected odd width to fail validation")
	} else if !strings.Contains(err.Error(), "even") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateProvidersRequiresKeys(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateProviders(); err == nil {
		t.Fatal("expected missing llm key to fail")
	}
	cfg.LLM.APIKey = "k"
	cfg.Images.APIKey = "k"
	cfg.Speech.APIKey = "k"
	if err := cfg.ValidateProviders(); err != nil {
		t.Fatalf("ValidateProviders: %v", err)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected second WriteSample to fail")
	}
}
