package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is structurally usable. Provider
// credentials are checked separately by ValidateProviders so read-only
// commands work without API keys.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

// ValidateProviders ensures every external generation service is configured.
// The pipeline calls this before doing any work.
func (c *Config) ValidateProviders() error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/shortreel/config.toml"
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required. Set SHORTREEL_LLM_API_KEY or edit %s (create with 'shortreel config init')", defaultPath)
	}
	if strings.TrimSpace(c.Images.APIKey) == "" {
		return fmt.Errorf("images.api_key is required. Set SHORTREEL_IMAGES_API_KEY or edit %s", defaultPath)
	}
	if strings.TrimSpace(c.Speech.APIKey) == "" {
		return fmt.Errorf("speech.api_key is required. Set SHORTREEL_SPEECH_API_KEY or edit %s", defaultPath)
	}
	if strings.TrimSpace(c.Transcriber.Command) == "" {
		return errors.New("transcriber.command must be set")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}
	if c.Render.Width%2 != 0 || c.Render.Height%2 != 0 {
		return errors.New("render.width and render.height must be even for H.264 encoding")
	}
	if c.Render.FrameRate <= 0 || c.Render.FrameRate > 120 {
		return fmt.Errorf("render.frame_rate must be between 1 and 120, got %d", c.Render.FrameRate)
	}
	if c.Render.MinCaptionSeconds <= 0 || c.Render.MinCaptionSeconds > 5 {
		return fmt.Errorf("render.min_caption_seconds must be between 0 and 5, got %g", c.Render.MinCaptionSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
