package images

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
	defaultBaseURL        = "https://api.openai.com/v1/images/generations"
	defaultSize           = "1024x1792"
	defaultTimeoutSeconds = 120
)

// Config captures the image provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Size           string
	TimeoutSeconds int
}

// Client talks to an OpenAI-compatible image-generation endpoint (BaseURL is
// the full endpoint URL). The provider returns a URL to the rendered image;
// the client fetches it and writes the bytes to the scene's destination
// path.
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

// NewClient builds an image client with defaults applied.
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
			Size:    strings.TrimSpace(cfg.Size),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Size == "" {
		client.cfg.Size = defaultSize
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate requests one image for the scene description and returns the
// provider's retrieval URL.
func (c *Client) Generate(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", services.Wrap(services.ErrInvalidInput, "images", "generate", "description must not be empty", nil)
	}
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "images", "generate", "api key required", nil)
	}

	payload, err := json.Marshal(generationRequest{
		Model:  c.cfg.Model,
		Prompt: description,
		N:      1,
		Size:   c.cfg.Size,
	})
	if err != nil {
		return "", fmt.Errorf("encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "images", "generate", "image request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "images", "generate", "read image response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrProvider, "images", "generate",
			fmt.Sprintf("image endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var parsed generationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrProvider, "images", "generate", "decode image response", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", services.Wrap(services.ErrProvider, "images", "generate", parsed.Error.Message, nil)
	}
	if len(parsed.Data) == 0 || strings.TrimSpace(parsed.Data[0].URL) == "" {
		return "", services.Wrap(services.ErrProvider, "images", "generate", "response carried no image URL", nil)
	}
	return parsed.Data[0].URL, nil
}

// Fetch downloads the generated image and writes it to path.
func (c *Client) Fetch(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build image fetch: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrProvider, "images", "fetch", "image download failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrProvider, "images", "fetch",
			fmt.Sprintf("image download returned status %d", resp.StatusCode), nil)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return services.Wrap(services.ErrProvider, "images", "fetch", "write image payload", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close image file: %w", err)
	}
	return nil
}

// GenerateToFile runs the generate-then-fetch pair for a scene.
func (c *Client) GenerateToFile(ctx context.Context, description, path string) error {
	url, err := c.Generate(ctx, description)
	if err != nil {
		return err
	}
	return c.Fetch(ctx, url, path)
}
