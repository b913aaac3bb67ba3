package ffmpeg

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shortreel/internal/logging"
	"shortreel/internal/services"
)

func newTestEngine(t *testing.T, runner CommandRunner) *Engine {
	t.Helper()
	engine := NewEngine("ffmpeg", "ffprobe", "", logging.NewNop())
	engine.WithCommandRunner(runner)
	return engine
}

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fixture"), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestRenderSceneBuildsExpectedArgs(t *testing.T) {
	dir := t.TempDir()
	image := writeFixture(t, dir, "image0.jpg")
	audio := writeFixture(t, dir, "audio0.mp3")
	subs := writeFixture(t, dir, "subtitles0.ass")
	output := filepath.Join(dir, "scene_0.mp4")

	var gotArgs []string
	engine := newTestEngine(t, func(_ context.Context, name string, args ...string) error {
		if name != "ffmpeg" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args
		return nil
	})

	clip, err := engine.RenderScene(context.Background(), RenderRequest{
		ImagePath:       image,
		AudioPath:       audio,
		SubtitlePath:    subs,
		DurationSeconds: 3.2,
		Width:           1080,
		Height:          1920,
		FrameRate:       30,
		OutputPath:      output,
	})
	if err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if clip.Path != output || clip.DurationSeconds != 3.2 {
		t.Fatalf("unexpected clip %+v", clip)
	}

	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{
		"-loop 1",
		"-i " + image,
		"-i " + audio,
		"scale=1080:1920",
		"crop=1080:1920",
		"subtitles=",
		"-c:v libx264",
		"-c:a aac",
		"-t 3.200",
		output,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}

func TestRenderSceneOmitsSubtitleFilterWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	image := writeFixture(t, dir, "image0.jpg")
	audio := writeFixture(t, dir, "audio0.mp3")

	var gotArgs []string
	engine := newTestEngine(t, func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	})
	_, err := engine.RenderScene(context.Background(), RenderRequest{
		ImagePath:       image,
		AudioPath:       audio,
		DurationSeconds: 1.0,
		Width:           1080,
		Height:          1920,
		FrameRate:       30,
		OutputPath:      filepath.Join(dir, "scene_0.mp4"),
	})
	if err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if strings.Contains(strings.Join(gotArgs, " "), "subtitles=") {
		t.Fatalf("unexpected subtitles filter in %v", gotArgs)
	}
}

func TestRenderSceneMissingAsset(t *testing.T) {
	dir := t.TempDir()
	audio := writeFixture(t, dir, "audio0.mp3")

	called := false
	engine := newTestEngine(t, func(context.Context, string, ...string) error {
		called = true
		return nil
	})
	_, err := engine.RenderScene(context.Background(), RenderRequest{
		ImagePath:       filepath.Join(dir, "missing.jpg"),
		AudioPath:       audio,
		DurationSeconds: 1.0,
		Width:           1080,
		Height:          1920,
		FrameRate:       30,
		OutputPath:      filepath.Join(dir, "scene_0.mp4"),
	})
	if !errors.Is(err, services.ErrMissingAsset) {
		t.Fatalf("expected ErrMissingAsset, got %v", err)
	}
	if called {
		t.Fatal("encoder must not launch when an input is missing")
	}
}

func TestRenderSceneEncoderFailure(t *testing.T) {
	dir := t.TempDir()
	image := writeFixture(t, dir, "image0.jpg")
	audio := writeFixture(t, dir, "audio0.mp3")

	engine := newTestEngine(t, func(context.Context, string, ...string) error {
		return errors.New("ffmpeg: exit status 1: invalid data")
	})
	_, err := engine.RenderScene(context.Background(), RenderRequest{
		ImagePath:       image,
		AudioPath:       audio,
		DurationSeconds: 1.0,
		Width:           1080,
		Height:          1920,
		FrameRate:       30,
		OutputPath:      filepath.Join(dir, "scene_0.mp4"),
	})
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid data") {
		t.Fatalf("encoder diagnostic lost: %v", err)
	}
}

func TestConcatWritesOrderedManifestAndRemovesIt(t *testing.T) {
	dir := t.TempDir()
	clips := []Clip{
		{Path: filepath.Join(dir, "scene_0.mp4")},
		{Path: filepath.Join(dir, "scene_1.mp4")},
		{Path: filepath.Join(dir, "scene_2.mp4")},
	}
	output := filepath.Join(dir, "final_output.mp4")
	manifest := filepath.Join(dir, "concat_list.txt")

	var manifestContent string
	engine := newTestEngine(t, func(_ context.Context, _ string, args ...string) error {
		data, err := os.ReadFile(manifest)
		if err != nil {
			return err
		}
		manifestContent = string(data)
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "-f concat") || !strings.Contains(joined, "-c copy") {
			t.Fatalf("unexpected concat args: %s", joined)
		}
		return nil
	})

	if err := engine.Concat(context.Background(), clips, output); err != nil {
		t.Fatalf("Concat: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(manifestContent), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 manifest lines, got %d: %q", len(lines), manifestContent)
	}
	for i, line := range lines {
		want := "file '" + clips[i].Path + "'"
		if line != want {
			t.Fatalf("manifest line %d = %q, want %q", i, line, want)
		}
	}
	if _, err := os.Stat(manifest); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("manifest not removed after success: %v", err)
	}
}

func TestConcatRemovesManifestOnFailure(t *testing.T) {
	dir := t.TempDir()
	clips := []Clip{
		{Path: filepath.Join(dir, "scene_0.mp4")},
		{Path: filepath.Join(dir, "scene_1.mp4")},
		{Path: filepath.Join(dir, "scene_2.mp4")},
	}
	output := filepath.Join(dir, "final_output.mp4")
	manifest := filepath.Join(dir, "concat_list.txt")

	engine := newTestEngine(t, func(context.Context, string, ...string) error {
		if _, err := os.Stat(manifest); err != nil {
			t.Fatalf("manifest should exist during invocation: %v", err)
		}
		return errors.New("exit status 1")
	})

	err := engine.Concat(context.Background(), clips, output)
	if !errors.Is(err, services.ErrConcat) {
		t.Fatalf("expected ErrConcat, got %v", err)
	}
	if _, statErr := os.Stat(manifest); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("manifest not removed after failure: %v", statErr)
	}
}

func TestConcatEmptyInput(t *testing.T) {
	engine := newTestEngine(t, func(context.Context, string, ...string) error {
		t.Fatal("encoder must not launch for empty input")
		return nil
	})
	err := engine.Concat(context.Background(), nil, filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, services.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestEscapeManifestPath(t *testing.T) {
	got := escapeManifestPath("/tmp/it's here.mp4")
	want := `/tmp/it'\''s here.mp4`
	if got != want {
		t.Fatalf("escapeManifestPath = %q, want %q", got, want)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := escapeFilterPath(`/tmp/run 1/subs,0.ass`)
	if strings.Contains(got, ",") && !strings.Contains(got, `\,`) {
		t.Fatalf("comma not escaped: %q", got)
	}
}

type recordingHandler struct {
	records *[]slog.Record
	attrs   []slog.Attr
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	r.AddAttrs(h.attrs...)
	*h.records = append(*h.records, r)
	return nil
}
func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return recordingHandler{records: h.records, attrs: combined}
}
func (h recordingHandler) WithGroup(string) slog.Handler { return h }

func TestNewEngineTagsComponentOnce(t *testing.T) {
	dir := t.TempDir()
	image := writeFixture(t, dir, "image0.jpg")
	audio := writeFixture(t, dir, "audio0.mp3")

	var records []slog.Record
	engine := NewEngine("ffmpeg", "ffprobe", "", slog.New(recordingHandler{records: &records}))
	engine.WithCommandRunner(func(context.Context, string, ...string) error { return nil })

	if _, err := engine.RenderScene(context.Background(), RenderRequest{
		ImagePath:       image,
		AudioPath:       audio,
		DurationSeconds: 1.0,
		Width:           1080,
		Height:          1920,
		FrameRate:       30,
		OutputPath:      filepath.Join(dir, "scene_0.mp4"),
	}); err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one log record")
	}
	for _, record := range records {
		components := 0
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == logging.FieldComponent {
				components++
			}
			return true
		})
		if components != 1 {
			t.Fatalf("expected exactly one %s attribute, got %d on %q",
				logging.FieldComponent, components, record.Message)
		}
	}
}
