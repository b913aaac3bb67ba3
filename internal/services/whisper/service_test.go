package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shortreel/internal/services"
)

const transcriptFixture = `{
  "segments": [{"text": "hello there"}],
  "word_segments": [
    {"word": "hello", "start": 0.1, "end": 0.4},
    {"word": "there", "start": 0.5, "end": 0.9},
    {"word": "[noise]", "start": null, "end": null}
  ]
}`

func writeAudioFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "audio0.mp3")
	if err := os.WriteFile(path, []byte("ID3fake"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}

func TestTranscribeParsesWordSegments(t *testing.T) {
	dir := t.TempDir()
	audioPath := writeAudioFixture(t, dir)

	svc := NewService(Config{Command: "whisperx", Model: "base", Language: "en"})
	var capturedArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != "whisperx" {
			t.Errorf("unexpected command %q", name)
		}
		capturedArgs = args
		return os.WriteFile(filepath.Join(dir, "audio0.json"), []byte(transcriptFixture), 0o644)
	})

	words, err := svc.Transcribe(context.Background(), audioPath, dir)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 timed words, got %d", len(words))
	}
	if words[0].Text != "hello" || words[0].Start != 0.1 || words[0].End != 0.4 {
		t.Fatalf("unexpected first word %+v", words[0])
	}
	if words[1].Text != "there" {
		t.Fatalf("unexpected second word %+v", words[1])
	}

	foundLanguage := false
	for i, arg := range capturedArgs {
		if arg == "--language" && i+1 < len(capturedArgs) && capturedArgs[i+1] == "en" {
			foundLanguage = true
		}
	}
	if !foundLanguage {
		t.Fatalf("expected --language en in args %v", capturedArgs)
	}
	if capturedArgs[0] != audioPath {
		t.Fatalf("expected audio path as first arg, got %v", capturedArgs)
	}
}

func TestTranscribeMissingAudio(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("transcriber must not run when the audio file is missing")
		return nil
	})
	_, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"), "")
	if !errors.Is(err, services.ErrMissingAsset) {
		t.Fatalf("expected missing asset error, got %v", err)
	}
}

func TestTranscribeCommandFailure(t *testing.T) {
	dir := t.TempDir()
	audioPath := writeAudioFixture(t, dir)

	svc := NewService(Config{})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})
	if _, err := svc.Transcribe(context.Background(), audioPath, dir); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestTranscribeMissingTranscriptOutput(t *testing.T) {
	dir := t.TempDir()
	audioPath := writeAudioFixture(t, dir)

	svc := NewService(Config{})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return nil
	})
	if _, err := svc.Transcribe(context.Background(), audioPath, dir); !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error for missing transcript, got %v", err)
	}
}

func TestTranscribeEmptyWordList(t *testing.T) {
	dir := t.TempDir()
	audioPath := writeAudioFixture(t, dir)

	svc := NewService(Config{})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return os.WriteFile(filepath.Join(dir, "audio0.json"), []byte(`{"word_segments": []}`), 0o644)
	})
	words, err := svc.Transcribe(context.Background(), audioPath, dir)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected no words, got %d", len(words))
	}
}
