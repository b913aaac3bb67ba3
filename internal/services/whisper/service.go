package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"shortreel/internal/services"
	"shortreel/internal/timeline"
)

const (
	// DefaultCommand is the transcriber binary invoked when none is configured.
	DefaultCommand = "whisperx"

	defaultModel          = "base"
	defaultLanguage       = "en"
	defaultTimeoutSeconds = 600
)

// Config captures runtime settings for the transcriber.
type Config struct {
	// Command is the transcriber binary (e.g., "whisperx").
	Command string
	// Model selects the transcription model.
	Model string
	// Language pins the spoken language; empty lets the tool detect it.
	Language string
	// TimeoutSeconds bounds a single transcription invocation.
	TimeoutSeconds int
}

// Service invokes the transcriber for scene audio files.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with defaults applied.
func NewService(cfg Config) *Service {
	if strings.TrimSpace(cfg.Command) == "" {
		cfg.Command = DefaultCommand
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Command returns the configured transcriber binary for preflight checks.
func (s *Service) Command() string {
	return s.cfg.Command
}

type wordSegment struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type transcriptDocument struct {
	WordSegments []wordSegment `json:"word_segments"`
}

// Transcribe runs the transcriber on the audio file and returns the word
// observations in transcript order. Words the tool could not time (no start
// or end) are dropped; timing validation beyond that belongs to the caption
// timeline, not this layer.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) ([]timeline.Word, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "transcribe", "run", "audio path required", nil)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, services.Wrap(services.ErrMissingAsset, "transcribe", "run", "audio file not found", err)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	runCtx := ctx
	if s.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	args := s.buildArgs(audioPath, outputDir)
	if err := s.run(runCtx, s.cfg.Command, args...); err != nil {
		return nil, services.Wrap(services.ErrProvider, "transcribe", "run", "transcriber invocation failed", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	words, err := loadWordSegments(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrProvider, "transcribe", "parse", "transcript output unusable", err)
	}
	return words, nil
}

func (s *Service) buildArgs(audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", s.cfg.Model,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if lang := strings.TrimSpace(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func loadWordSegments(path string) ([]timeline.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	words := make([]timeline.Word, 0, len(doc.WordSegments))
	for _, segment := range doc.WordSegments {
		text := strings.TrimSpace(segment.Word)
		if text == "" || segment.Start == nil || segment.End == nil {
			continue
		}
		words = append(words, timeline.Word{
			Text:  text,
			Start: *segment.Start,
			End:   *segment.End,
		})
	}
	return words, nil
}
