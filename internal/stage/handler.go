package stage

import (
	"context"

	"shortreel/internal/media/ffmpeg"
	"shortreel/internal/run"
	"shortreel/internal/script"
	"shortreel/internal/timeline"
)

// State is the shared run state the pipeline threads through its stages.
// Each stage reads what earlier stages produced and fills in its own output;
// artifacts themselves live on disk under the run directory.
type State struct {
	Run    run.Run
	Prompt string

	// Script is set by the script stage; scene order is final video order.
	Script script.Script
	// Words holds per-scene word observations, indexed by scene.
	Words [][]timeline.Word
	// Clips holds per-scene rendered clips, indexed by scene.
	Clips []ffmpeg.Clip
	// OutputPath is the concatenated final video.
	OutputPath string
}

// Handler describes the contract the pipeline needs from each stage.
type Handler interface {
	// Prepare validates stage inputs before Execute does real work.
	Prepare(context.Context, *State) error
	// Execute performs the stage's work and records outputs on the state.
	Execute(context.Context, *State) error
	// HealthCheck reports whether the stage's collaborators are reachable.
	HealthCheck(context.Context) Health
}
