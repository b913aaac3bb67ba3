package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shortreel/internal/services"
)

const (
	defaultBaseURL        = "https://api.openai.com/v1/audio/speech"
	defaultVoice          = "alloy"
	defaultTimeoutSeconds = 120

	// Large narrations are still small audio files; cap reads well above
	// anything a scene narration produces.
	maxAudioBytes = 64 << 20
)

// Config captures the speech provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Voice          string
	TimeoutSeconds int
}

// Client talks to an OpenAI-compatible speech-synthesis endpoint (BaseURL is
// the full endpoint URL) and writes the returned MP3 payload to the scene's
// destination path.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option adjusts client construction, mainly for tests.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a speech client with defaults applied.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:   strings.TrimSpace(cfg.Model),
			Voice:   strings.TrimSpace(cfg.Voice),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Voice == "" {
		client.cfg.Voice = defaultVoice
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type synthesisRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize requests narrated audio for the text and returns the raw MP3
// payload.
func (c *Client) Synthesize(ctx context.Context, narration string) ([]byte, error) {
	narration = strings.TrimSpace(narration)
	if narration == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "speech", "synthesize", "narration must not be empty", nil)
	}
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "speech", "synthesize", "api key required", nil)
	}

	payload, err := json.Marshal(synthesisRequest{
		Model:          c.cfg.Model,
		Input:          narration,
		Voice:          c.cfg.Voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("encode speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrProvider, "speech", "synthesize", "speech request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, services.Wrap(services.ErrProvider, "speech", "synthesize",
			fmt.Sprintf("speech endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrProvider, "speech", "synthesize", "read audio payload", err)
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrProvider, "speech", "synthesize", "audio payload was empty", nil)
	}
	return audio, nil
}

// SynthesizeToFile synthesizes the narration and writes the audio to path.
func (c *Client) SynthesizeToFile(ctx context.Context, narration, path string) error {
	audio, err := c.Synthesize(ctx, narration)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}
