// Package notifications pushes run lifecycle events to an ntfy topic when
// one is configured; otherwise every call is a no-op.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortreel/internal/config"
)

const userAgent = "shortreel/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyRunStarted(ctx context.Context, name, prompt string) error
	NotifyRunCompleted(ctx context.Context, name, outputPath string, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, name, stage string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		runEvents: cfg.Notifications.RunEvents,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	runEvents bool
	errors    bool
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, name, prompt string) error {
	if !n.runEvents {
		return nil
	}
	return n.send(ctx, payload{
		title:   "Video run started",
		message: fmt.Sprintf("%s: %s", name, truncate(prompt, 120)),
		tags:    []string{"clapper"},
	})
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, name, outputPath string, duration time.Duration) error {
	if !n.runEvents {
		return nil
	}
	return n.send(ctx, payload{
		title:   "Video run completed",
		message: fmt.Sprintf("%s finished in %s: %s", name, duration.Round(time.Second), outputPath),
		tags:    []string{"white_check_mark"},
	})
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, name, stage string, cause error) error {
	if !n.errors {
		return nil
	}
	message := fmt.Sprintf("%s failed at %s", name, stage)
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, truncate(cause.Error(), 200))
	}
	return n.send(ctx, payload{
		title:    "Video run failed",
		message:  message,
		tags:     []string{"rotating_light"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:   "shortreel test",
		message: "Notifications are working.",
		tags:    []string{"bell"},
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string, string) error { return nil }
func (noopService) NotifyRunCompleted(context.Context, string, string, time.Duration) error {
	return nil
}
func (noopService) NotifyRunFailed(context.Context, string, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error                       { return nil }
