package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shortreel/internal/services"
)

func TestSynthesizeToFileWritesAudio(t *testing.T) {
	audio := []byte("ID3fake-mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Input != "Foxes hunt at dawn." {
			t.Errorf("unexpected input %q", req.Input)
		}
		if req.ResponseFormat != "mp3" {
			t.Errorf("unexpected response format %q", req.ResponseFormat)
		}
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "tts-model"})
	path := filepath.Join(t.TempDir(), "audio0.mp3")
	if err := client.SynthesizeToFile(context.Background(), "Foxes hunt at dawn.", path); err != nil {
		t.Fatalf("SynthesizeToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(data, audio) {
		t.Fatalf("audio payload mismatch")
	}
}

func TestSynthesizeSurfacesProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.Synthesize(context.Background(), "words"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestSynthesizeRejectsEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.Synthesize(context.Background(), "words"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error for empty payload, got %v", err)
	}
}

func TestSynthesizeRejectsEmptyNarration(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})
	if _, err := client.Synthesize(context.Background(), "  "); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
