package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"shortreel/internal/logging"
)

const lockRetryDelay = 250 * time.Millisecond

// CommandRunner executes an external command. Tests inject a fake to observe
// arguments without spawning processes.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Engine wraps ffmpeg/ffprobe invocations behind the encoder lock.
type Engine struct {
	ffmpegBinary  string
	ffprobeBinary string
	lock          *flock.Flock
	logger        *slog.Logger
	runner        CommandRunner
}

// NewEngine constructs an engine. lockPath names the cross-process encoder
// lock file; when empty, no locking is performed (tests).
func NewEngine(ffmpegBinary, ffprobeBinary, lockPath string, logger *slog.Logger) *Engine {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	engine := &Engine{
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		logger:        logging.NewComponentLogger(logger, "ffmpeg"),
	}
	if strings.TrimSpace(lockPath) != "" {
		engine.lock = flock.New(lockPath)
	}
	return engine
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Engine) WithCommandRunner(runner CommandRunner) {
	e.runner = runner
}

// FFprobeBinary returns the probe binary the engine was configured with.
func (e *Engine) FFprobeBinary() string {
	return e.ffprobeBinary
}

// run executes ffmpeg under the encoder lock. The lock makes the
// one-encode-at-a-time policy explicit instead of relying on callers to
// serialize.
func (e *Engine) run(ctx context.Context, args ...string) error {
	if e.lock != nil {
		locked, err := e.lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("acquire encoder lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("acquire encoder lock: not acquired")
		}
		defer func() {
			_ = e.lock.Unlock()
		}()
	}

	if e.runner != nil {
		return e.runner(ctx, e.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, e.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.ffmpegBinary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
