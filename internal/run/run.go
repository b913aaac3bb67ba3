package run

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dirTimestampLayout = "20060102-150405"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Run identifies one pipeline execution and its working directory. The
// directory holds every artifact the run produces and is never cleaned up
// automatically; callers decide what to keep.
type Run struct {
	// ID is the correlation identifier carried through logs and the store.
	ID string
	// Name is the sanitized human-facing name the directory is derived from.
	Name string
	// Dir is the run's working directory.
	Dir string
	// CreatedAt is when the run directory was established.
	CreatedAt time.Time
}

// New establishes a run working directory under outputRoot named
// <name>_<timestamp> and returns the Run describing it.
func New(outputRoot, name string) (Run, error) {
	name = SanitizeName(name)
	if name == "" {
		name = "run"
	}
	now := time.Now()
	dir := filepath.Join(outputRoot, fmt.Sprintf("%s_%s", name, now.Format(dirTimestampLayout)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Run{}, fmt.Errorf("create run directory: %w", err)
	}
	return Run{
		ID:        uuid.NewString(),
		Name:      name,
		Dir:       dir,
		CreatedAt: now,
	}, nil
}

// SanitizeName squeezes a free-form name into something safe for a
// directory component.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// ScriptPath is where the validated script is persisted.
func (r Run) ScriptPath() string {
	return filepath.Join(r.Dir, "script.json")
}

// ImagePath is the scene's generated still image.
func (r Run) ImagePath(scene int) string {
	return filepath.Join(r.Dir, fmt.Sprintf("image%d.jpg", scene))
}

// AudioPath is the scene's synthesized narration audio.
func (r Run) AudioPath(scene int) string {
	return filepath.Join(r.Dir, fmt.Sprintf("audio%d.mp3", scene))
}

// SubtitlePath is the scene's caption document.
func (r Run) SubtitlePath(scene int) string {
	return filepath.Join(r.Dir, fmt.Sprintf("subtitles%d.ass", scene))
}

// ClipPath is the scene's rendered clip.
func (r Run) ClipPath(scene int) string {
	return filepath.Join(r.Dir, fmt.Sprintf("scene_%d.mp4", scene))
}

// FinalPath is the concatenated output video.
func (r Run) FinalPath() string {
	return filepath.Join(r.Dir, "final_output.mp4")
}
