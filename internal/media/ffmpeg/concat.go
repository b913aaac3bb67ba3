package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shortreel/internal/logging"
	"shortreel/internal/services"
)

// Concat joins clips in order into one file using the concat demuxer with
// stream copy, so no re-encode occurs. The clip order in the manifest is the
// final video's scene order. The manifest is transient: it is removed before
// Concat returns, on both success and failure.
func (e *Engine) Concat(ctx context.Context, clips []Clip, outputPath string) error {
	if len(clips) == 0 {
		return services.Wrap(services.ErrEmptyInput, "concat", "", "no clips to concatenate", nil)
	}

	manifestPath := filepath.Join(filepath.Dir(outputPath), "concat_list.txt")
	if err := writeConcatManifest(manifestPath, clips); err != nil {
		return services.Wrap(services.ErrConcat, "concat", "write manifest", manifestPath, err)
	}
	defer func() {
		_ = os.Remove(manifestPath)
	}()

	e.logger.Debug("launching concatenation",
		logging.Int("clips", len(clips)),
		logging.String("output", outputPath),
	)
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		outputPath,
	}
	if err := e.run(ctx, args...); err != nil {
		return services.Wrap(services.ErrConcat, "concat", "", outputPath, err)
	}
	return nil
}

func writeConcatManifest(path string, clips []Clip) error {
	var b strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", escapeManifestPath(abs))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// escapeManifestPath quotes a path for the concat demuxer's single-quoted
// file directive.
func escapeManifestPath(path string) string {
	return strings.ReplaceAll(path, `'`, `'\''`)
}
