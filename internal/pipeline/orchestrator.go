package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shortreel/internal/config"
	"shortreel/internal/logging"
	"shortreel/internal/media/ffmpeg"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/notifications"
	"shortreel/internal/queue"
	"shortreel/internal/run"
	"shortreel/internal/script"
	"shortreel/internal/services"
	"shortreel/internal/stage"
	"shortreel/internal/timeline"
)

// ImageGenerator produces and persists one still image per scene.
type ImageGenerator interface {
	GenerateToFile(ctx context.Context, description, path string) error
}

// SpeechSynthesizer produces and persists narrated audio per scene.
type SpeechSynthesizer interface {
	SynthesizeToFile(ctx context.Context, narration, path string) error
}

// Transcriber returns word-level observations for a scene's audio.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir string) ([]timeline.Word, error)
}

// MediaEngine renders scene clips and concatenates them.
type MediaEngine interface {
	RenderScene(ctx context.Context, req ffmpeg.RenderRequest) (ffmpeg.Clip, error)
	Concat(ctx context.Context, clips []ffmpeg.Clip, outputPath string) error
}

// DurationProbe reads a media file's duration in seconds.
type DurationProbe func(ctx context.Context, path string) (float64, error)

// Dependencies collects the collaborators the orchestrator drives.
type Dependencies struct {
	Store       *queue.Store
	Notifier    notifications.Service
	Script      script.Completer
	Images      ImageGenerator
	Speech      SpeechSynthesizer
	Transcriber Transcriber
	Engine      MediaEngine
	// Probe defaults to ffprobe using the configured binary.
	Probe DurationProbe
}

// Orchestrator executes runs end to end.
type Orchestrator struct {
	cfg    *config.Config
	deps   Dependencies
	logger *slog.Logger
}

// NewOrchestrator wires an orchestrator from configuration and
// collaborators.
func NewOrchestrator(cfg *config.Config, deps Dependencies, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if deps.Notifier == nil {
		deps.Notifier = notifications.NewService(cfg)
	}
	if deps.Probe == nil {
		binary := cfg.Render.FFprobeBinary
		deps.Probe = func(ctx context.Context, path string) (float64, error) {
			return ffprobe.Duration(ctx, binary, path)
		}
	}
	return &Orchestrator{cfg: cfg, deps: deps, logger: logger}
}

// Result summarizes a completed run.
type Result struct {
	Run        run.Run
	SceneCount int
	OutputPath string
	Elapsed    time.Duration
}

type stageStep struct {
	name    string
	status  queue.Status
	handler stage.Handler
}

// Execute runs the full pipeline for one prompt. The run directory and its
// artifacts are left in place regardless of outcome.
func (o *Orchestrator) Execute(ctx context.Context, name, prompt string) (Result, error) {
	started := time.Now()

	r, err := run.New(o.cfg.Paths.OutputDir, name)
	if err != nil {
		return Result{}, err
	}
	ctx = services.WithRunID(ctx, r.ID)
	logger := o.logger.With(logging.String(logging.FieldRunID, r.ID))

	if o.deps.Store != nil {
		if _, err := o.deps.Store.CreateRun(ctx, r.ID, r.Name, prompt, r.Dir); err != nil {
			return Result{}, err
		}
	}
	_ = o.deps.Notifier.NotifyRunStarted(ctx, r.Name, prompt)
	logger.Info("run started", logging.String("dir", r.Dir))

	state := &stage.State{Run: r, Prompt: prompt}
	steps := []stageStep{
		{"script", queue.StatusScriptGenerated, &scriptStage{orc: o, logger: logger}},
		{"assets", queue.StatusAssetsGenerated, &assetsStage{orc: o, logger: logger}},
		{"transcribe", queue.StatusTranscribed, &transcribeStage{orc: o, logger: logger}},
		{"render", queue.StatusRendered, &renderStage{orc: o, logger: logger}},
		{"concat", "", &concatStage{orc: o, logger: logger}},
	}

	for _, step := range steps {
		stageCtx := services.WithStage(ctx, step.name)
		stageLogger := logger.With(logging.String(logging.FieldStage, step.name))

		if err := step.handler.Prepare(stageCtx, state); err != nil {
			return Result{}, o.fail(ctx, r, step.name, err)
		}
		if err := step.handler.Execute(stageCtx, state); err != nil {
			return Result{}, o.fail(ctx, r, step.name, err)
		}
		stageLogger.Info("stage complete")

		if o.deps.Store != nil && step.status != "" {
			if err := o.deps.Store.UpdateStatus(ctx, r.ID, step.status); err != nil {
				return Result{}, o.fail(ctx, r, step.name, err)
			}
		}
	}

	elapsed := time.Since(started)
	if o.deps.Store != nil {
		if err := o.deps.Store.MarkCompleted(ctx, r.ID, state.OutputPath); err != nil {
			return Result{}, err
		}
	}
	_ = o.deps.Notifier.NotifyRunCompleted(ctx, r.Name, state.OutputPath, elapsed)
	logger.Info("run completed",
		logging.String("output", state.OutputPath),
		logging.Duration("elapsed", elapsed))

	return Result{
		Run:        r,
		SceneCount: len(state.Script.Scenes),
		OutputPath: state.OutputPath,
		Elapsed:    elapsed,
	}, nil
}

func (o *Orchestrator) fail(ctx context.Context, r run.Run, stageName string, cause error) error {
	err := fmt.Errorf("stage %s: %w", stageName, cause)
	o.logger.Error("run failed",
		logging.String(logging.FieldRunID, r.ID),
		logging.String(logging.FieldStage, stageName),
		logging.String("classification", services.Classify(cause)),
		logging.Error(cause))
	if o.deps.Store != nil {
		_ = o.deps.Store.MarkFailed(ctx, r.ID, err.Error())
	}
	_ = o.deps.Notifier.NotifyRunFailed(ctx, r.Name, stageName, cause)
	return err
}

// HealthCheck reports readiness of every stage's collaborators without
// starting a run.
func (o *Orchestrator) HealthCheck(ctx context.Context) []stage.Health {
	handlers := []stage.Handler{
		&scriptStage{orc: o, logger: o.logger},
		&assetsStage{orc: o, logger: o.logger},
		&transcribeStage{orc: o, logger: o.logger},
		&renderStage{orc: o, logger: o.logger},
		&concatStage{orc: o, logger: o.logger},
	}
	health := make([]stage.Health, 0, len(handlers))
	for _, h := range handlers {
		health = append(health, h.HealthCheck(ctx))
	}
	return health
}
