// Package deps verifies the external binaries the pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"shortreel/internal/config"
)

// Requirement defines an external dependency the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required lists the external binaries a run needs, derived from
// configuration.
func Required(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Render.FFmpegBinary,
			Description: "renders scene clips and concatenates the final video",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Render.FFprobeBinary,
			Description: "reads narration and clip durations",
		},
		{
			Name:        "Transcriber",
			Command:     cfg.Transcriber.Command,
			Description: "produces word-level timestamps for captions",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the non-optional requirements that are
// unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
