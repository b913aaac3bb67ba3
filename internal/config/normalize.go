package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeProviders()
	c.normalizeTranscriber()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if key := strings.TrimSpace(os.Getenv("SHORTREEL_LLM_API_KEY")); key != "" && strings.TrimSpace(c.LLM.APIKey) == "" {
		c.LLM.APIKey = key
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeProviders() {
	if key := strings.TrimSpace(os.Getenv("SHORTREEL_IMAGES_API_KEY")); key != "" && strings.TrimSpace(c.Images.APIKey) == "" {
		c.Images.APIKey = key
	}
	if strings.TrimSpace(c.Images.BaseURL) == "" {
		c.Images.BaseURL = defaultImagesBaseURL
	}
	if strings.TrimSpace(c.Images.Model) == "" {
		c.Images.Model = defaultImagesModel
	}
	if strings.TrimSpace(c.Images.Size) == "" {
		c.Images.Size = defaultImagesSize
	}
	if c.Images.TimeoutSeconds <= 0 {
		c.Images.TimeoutSeconds = defaultImagesTimeoutSeconds
	}

	if key := strings.TrimSpace(os.Getenv("SHORTREEL_SPEECH_API_KEY")); key != "" && strings.TrimSpace(c.Speech.APIKey) == "" {
		c.Speech.APIKey = key
	}
	if strings.TrimSpace(c.Speech.BaseURL) == "" {
		c.Speech.BaseURL = defaultSpeechBaseURL
	}
	if strings.TrimSpace(c.Speech.Model) == "" {
		c.Speech.Model = defaultSpeechModel
	}
	if strings.TrimSpace(c.Speech.Voice) == "" {
		c.Speech.Voice = defaultSpeechVoice
	}
	if c.Speech.TimeoutSeconds <= 0 {
		c.Speech.TimeoutSeconds = defaultSpeechTimeoutSeconds
	}
}

func (c *Config) normalizeTranscriber() {
	if strings.TrimSpace(c.Transcriber.Command) == "" {
		c.Transcriber.Command = defaultTranscriberCommand
	}
	if strings.TrimSpace(c.Transcriber.Model) == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
	if strings.TrimSpace(c.Transcriber.Language) == "" {
		c.Transcriber.Language = defaultTranscriberLanguage
	}
	if c.Transcriber.TimeoutSeconds <= 0 {
		c.Transcriber.TimeoutSeconds = defaultTranscriberTimeoutSeconds
	}
}

func (c *Config) normalizeRender() {
	if strings.TrimSpace(c.Render.FFmpegBinary) == "" {
		c.Render.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Render.FFprobeBinary) == "" {
		c.Render.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Render.Width <= 0 {
		c.Render.Width = defaultRenderWidth
	}
	if c.Render.Height <= 0 {
		c.Render.Height = defaultRenderHeight
	}
	if c.Render.FrameRate <= 0 {
		c.Render.FrameRate = defaultRenderFrameRate
	}
	if c.Render.MinCaptionSeconds <= 0 {
		c.Render.MinCaptionSeconds = defaultMinCaptionSeconds
	}
	if strings.TrimSpace(c.Render.FontName) == "" {
		c.Render.FontName = defaultFontName
	}
	if c.Render.FontSize <= 0 {
		c.Render.FontSize = defaultFontSize
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
