package queue

import "time"

// Status tracks a run through the pipeline lifecycle.
type Status string

const (
	StatusPending         Status = "pending"
	StatusScriptGenerated Status = "script_generated"
	StatusAssetsGenerated Status = "assets_generated"
	StatusTranscribed     Status = "transcribed"
	StatusRendered        Status = "rendered"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
)

// Record is one persisted run.
type Record struct {
	ID           string
	Name         string
	Prompt       string
	Status       Status
	SceneCount   int
	RunDir       string
	OutputPath   string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal reports whether the run can no longer change state.
func (r Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
