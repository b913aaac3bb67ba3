package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shortreel/internal/config"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := NewService(&cfg)
	if _, ok := svc.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", svc)
	}
	if err := svc.NotifyRunStarted(context.Background(), "demo", "a prompt"); err != nil {
		t.Fatalf("noop notify: %v", err)
	}
}

type captured struct {
	title    string
	message  string
	tags     string
	priority string
}

func newCaptureServer(t *testing.T, sink *[]captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		*sink = append(*sink, captured{
			title:    r.Header.Get("Title"),
			message:  string(body),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func newNtfyService(topic string) *ntfyService {
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: 2 * time.Second},
		runEvents: true,
		errors:    true,
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	svc := newNtfyService(server.URL)
	ctx := context.Background()

	if err := svc.NotifyRunStarted(ctx, "fox_facts", "facts about foxes"); err != nil {
		t.Fatalf("NotifyRunStarted: %v", err)
	}
	if err := svc.NotifyRunCompleted(ctx, "fox_facts", "/runs/fox/final_output.mp4", 93*time.Second); err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	if err := svc.NotifyRunFailed(ctx, "fox_facts", "render", errors.New("encoder exited 1")); err != nil {
		t.Fatalf("NotifyRunFailed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].title != "Video run started" {
		t.Errorf("unexpected start title %q", got[0].title)
	}
	if got[1].message == "" || got[1].title != "Video run completed" {
		t.Errorf("unexpected completion notification %+v", got[1])
	}
	if got[2].priority != "high" {
		t.Errorf("failure notification should be high priority, got %q", got[2].priority)
	}
}

func TestNtfyServiceSuppressesDisabledEvents(t *testing.T) {
	var got []captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	svc := newNtfyService(server.URL)
	svc.runEvents = false
	svc.errors = false

	ctx := context.Background()
	if err := svc.NotifyRunStarted(ctx, "demo", "prompt"); err != nil {
		t.Fatalf("NotifyRunStarted: %v", err)
	}
	if err := svc.NotifyRunFailed(ctx, "demo", "script", errors.New("boom")); err != nil {
		t.Fatalf("NotifyRunFailed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no notifications, got %d", len(got))
	}
}
