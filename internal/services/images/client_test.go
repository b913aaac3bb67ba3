package images

import (
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

func TestGenerateToFileWritesImage(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req generationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt != "a red fox at dawn" {
			t.Errorf("unexpected prompt %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []any{map[string]string{"url": server.URL + "/asset/image.jpg"}},
		})
	})
	mux.HandleFunc("/asset/image.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(imageBytes)
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/images/generations", Model: "img-model"})
	path := filepath.Join(t.TempDir(), "image0.jpg")
	if err := client.GenerateToFile(context.Background(), "a red fox at dawn", path); err != nil {
		t.Fatalf("GenerateToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != len(imageBytes) {
		t.Fatalf("expected %d bytes, got %d", len(imageBytes), len(data))
	}
}

func TestGenerateSurfacesProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.Generate(context.Background(), "a fox"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestGenerateRejectsMissingKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Generate(context.Background(), "a fox"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateRejectsEmptyURLResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.Generate(context.Background(), "a fox"); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
