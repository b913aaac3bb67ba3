package subtitles

import (
	"errors"
	"strings"
	"testing"

	"shortreel/internal/services"
	"shortreel/internal/timeline"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{0.5, "0:00:00.50"},
		{1.234, "0:00:01.23"},
		{1.236, "0:00:01.24"},
		{59.996, "0:01:00.00"},
		{61.5, "0:01:01.50"},
		{3599.99, "0:59:59.99"},
		{3600, "1:00:00.00"},
		{3661.01, "1:01:01.01"},
		{-2, "0:00:00.00"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%g) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestRenderDocument(t *testing.T) {
	doc := NewDocument("scene 0", 1080, 1920, DefaultStyle("Arial", 96))
	doc.AddCues(
		timeline.Cue{Text: "hello", Start: 0, End: 0.5},
		timeline.Cue{Text: "world", Start: 0.51, End: 1.2},
	)
	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"[Script Info]",
		"Title: scene 0",
		"PlayResX: 1080",
		"PlayResY: 1920",
		"[V4+ Styles]",
		"Style: Default,Arial,96,&H00FFFFFF",
		"[Events]",
		"Dialogue: 0,0:00:00.00,0:00:00.50,Default,,0,0,0,,hello",
		"Dialogue: 0,0:00:00.51,0:00:01.20,Default,,0,0,0,,world",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered document missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Dialogue:") != 2 {
		t.Fatalf("expected 2 dialogue lines:\n%s", out)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := NewDocument("empty", 1080, 1920, DefaultStyle("", 0))
	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "Dialogue:") {
		t.Fatalf("empty document produced dialogue lines:\n%s", out)
	}
	if !strings.Contains(out, "[Events]") {
		t.Fatal("expected events section header even when empty")
	}
}

func TestRenderRejectsOverlap(t *testing.T) {
	doc := NewDocument("bad", 1080, 1920, DefaultStyle("Arial", 96))
	doc.AddCues(
		timeline.Cue{Text: "a", Start: 0, End: 1.0},
		timeline.Cue{Text: "b", Start: 0.5, End: 1.5},
	)
	_, err := doc.Render()
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRenderRejectsInvertedCue(t *testing.T) {
	doc := NewDocument("bad", 1080, 1920, DefaultStyle("Arial", 96))
	doc.AddCues(timeline.Cue{Text: "a", Start: 1.0, End: 1.0})
	if _, err := doc.Render(); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRenderSanitizesText(t *testing.T) {
	doc := NewDocument("sanitize", 1080, 1920, DefaultStyle("Arial", 96))
	doc.AddCues(timeline.Cue{Text: "multi\nline {override}", Start: 0, End: 1})
	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `multi\Nline override`) {
		t.Fatalf("text not sanitized:\n%s", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := NewDocument("det", 1080, 1920, DefaultStyle("Arial", 96))
	doc.AddCues(
		timeline.Cue{Text: "a", Start: 0, End: 0.5},
		timeline.Cue{Text: "b", Start: 0.6, End: 1.1},
	)
	first, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := doc.Render()
		if err != nil {
			t.Fatalf("Render run %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("render output differed on run %d", i)
		}
	}
}
