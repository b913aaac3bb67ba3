package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"shortreel/internal/logging"
	"shortreel/internal/services"
)

// RenderRequest describes one scene encode job.
type RenderRequest struct {
	ImagePath string
	AudioPath string
	// SubtitlePath is optional; when set, the ASS cues are burned into the
	// video frames.
	SubtitlePath    string
	DurationSeconds float64
	Width           int
	Height          int
	FrameRate       int
	OutputPath      string
}

// Clip is one rendered scene.
type Clip struct {
	Path            string
	DurationSeconds float64
}

// RenderScene encodes a still image held for the narration's full duration
// into an H.264/AAC clip at the requested resolution. The clip duration is
// cut to match the audio, never the reverse.
func (e *Engine) RenderScene(ctx context.Context, req RenderRequest) (Clip, error) {
	if req.DurationSeconds <= 0 {
		return Clip{}, services.Wrap(services.ErrInvalidInput, "render", "scene",
			fmt.Sprintf("non-positive duration %g", req.DurationSeconds), nil)
	}
	required := []string{req.ImagePath, req.AudioPath}
	if strings.TrimSpace(req.SubtitlePath) != "" {
		required = append(required, req.SubtitlePath)
	}
	for _, path := range required {
		if _, err := os.Stat(path); err != nil {
			return Clip{}, services.Wrap(services.ErrMissingAsset, "render", "scene", path, err)
		}
	}

	args := buildRenderArgs(req)
	e.logger.Debug("launching scene encode",
		logging.String("output", req.OutputPath),
		logging.Float64("duration_seconds", req.DurationSeconds),
		logging.Bool("burn_subtitles", req.SubtitlePath != ""),
	)
	if err := e.run(ctx, args...); err != nil {
		return Clip{}, services.Wrap(services.ErrEncode, "render", "scene", req.OutputPath, err)
	}
	return Clip{Path: req.OutputPath, DurationSeconds: req.DurationSeconds}, nil
}

func buildRenderArgs(req RenderRequest) []string {
	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", req.Width, req.Height),
		fmt.Sprintf("crop=%d:%d", req.Width, req.Height),
	}
	if strings.TrimSpace(req.SubtitlePath) != "" {
		filters = append(filters, "subtitles="+escapeFilterPath(req.SubtitlePath))
	}

	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-loop", "1",
		"-i", req.ImagePath,
		"-i", req.AudioPath,
		"-vf", strings.Join(filters, ","),
		"-r", fmt.Sprintf("%d", req.FrameRate),
		"-c:v", "libx264",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-t", fmt.Sprintf("%.3f", req.DurationSeconds),
		req.OutputPath,
	}
}

// escapeFilterPath escapes the characters the ffmpeg filter parser treats
// specially inside a filter argument.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return replacer.Replace(path)
}
