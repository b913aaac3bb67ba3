package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"shortreel/internal/logging"
	"shortreel/internal/media/ffmpeg"
	"shortreel/internal/script"
	"shortreel/internal/services"
	"shortreel/internal/stage"
	"shortreel/internal/subtitles"
	"shortreel/internal/timeline"
)

// durationTolerance bounds how far a rendered clip may drift from its
// narration before the run fails.
const durationTolerance = 1.0

type scriptStage struct {
	orc    *Orchestrator
	logger *slog.Logger
}

func (s *scriptStage) Prepare(_ context.Context, state *stage.State) error {
	if state.Prompt == "" {
		return services.Wrap(services.ErrInvalidInput, "script", "prepare", "prompt required", nil)
	}
	return nil
}

func (s *scriptStage) Execute(ctx context.Context, state *stage.State) error {
	generated, err := script.Generate(ctx, s.orc.deps.Script, state.Prompt)
	if err != nil {
		return err
	}
	if err := generated.Save(state.Run.ScriptPath()); err != nil {
		return err
	}
	state.Script = generated
	if s.orc.deps.Store != nil {
		if err := s.orc.deps.Store.SetSceneCount(ctx, state.Run.ID, len(generated.Scenes)); err != nil {
			return err
		}
	}
	s.logger.Info("script generated", logging.Int("scenes", len(generated.Scenes)))
	return nil
}

func (s *scriptStage) HealthCheck(ctx context.Context) stage.Health {
	type checker interface {
		HealthCheck(context.Context) error
	}
	if c, ok := s.orc.deps.Script.(checker); ok {
		if err := c.HealthCheck(ctx); err != nil {
			return stage.Unhealthy("script", err.Error())
		}
	}
	return stage.Healthy("script")
}

type assetsStage struct {
	orc    *Orchestrator
	logger *slog.Logger
}

func (s *assetsStage) Prepare(_ context.Context, state *stage.State) error {
	if len(state.Script.Scenes) == 0 {
		return services.Wrap(services.ErrEmptyInput, "assets", "prepare", "no scenes to generate assets for", nil)
	}
	return nil
}

// Execute fans out one image and one audio request per scene. Requests have
// no ordering dependency on each other; results are keyed by scene index,
// never by completion order. Any failure cancels the rest of the stage.
func (s *assetsStage) Execute(ctx context.Context, state *stage.State) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i, scene := range state.Script.Scenes {
		i, scene := i, scene
		sceneCtx := services.WithScene(ctx, i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.orc.deps.Images.GenerateToFile(sceneCtx, scene.Description, state.Run.ImagePath(i)); err != nil {
				record(fmt.Errorf("scene %d image: %w", i, err))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.orc.deps.Speech.SynthesizeToFile(sceneCtx, scene.Narration, state.Run.AudioPath(i)); err != nil {
				record(fmt.Errorf("scene %d audio: %w", i, err))
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}

	for i := range state.Script.Scenes {
		for _, path := range []string{state.Run.ImagePath(i), state.Run.AudioPath(i)} {
			if _, err := os.Stat(path); err != nil {
				return services.Wrap(services.ErrMissingAsset, "assets", "verify",
					fmt.Sprintf("scene %d asset missing after generation", i), err)
			}
		}
	}
	s.logger.Info("assets generated", logging.Int("scenes", len(state.Script.Scenes)))
	return nil
}

func (s *assetsStage) HealthCheck(context.Context) stage.Health {
	if s.orc.deps.Images == nil || s.orc.deps.Speech == nil {
		return stage.Unhealthy("assets", "image or speech provider not configured")
	}
	return stage.Healthy("assets")
}

type transcribeStage struct {
	orc    *Orchestrator
	logger *slog.Logger
}

func (s *transcribeStage) Prepare(_ context.Context, state *stage.State) error {
	for i := range state.Script.Scenes {
		if _, err := os.Stat(state.Run.AudioPath(i)); err != nil {
			return services.Wrap(services.ErrMissingAsset, "transcribe", "prepare",
				fmt.Sprintf("scene %d audio missing", i), err)
		}
	}
	return nil
}

// Execute transcribes every scene's audio concurrently, then builds the
// caption timeline and writes the subtitle document per scene. A scene whose
// transcript yields no timed words gets no subtitle document; the renderer
// treats that as "no subtitle track".
func (s *transcribeStage) Execute(ctx context.Context, state *stage.State) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	words := make([][]timeline.Word, len(state.Script.Scenes))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range state.Script.Scenes {
		i := i
		sceneCtx := services.WithScene(ctx, i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sceneWords, err := s.orc.deps.Transcriber.Transcribe(sceneCtx, state.Run.AudioPath(i), state.Run.Dir)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("scene %d transcription: %w", i, err)
					cancel()
				}
				return
			}
			words[i] = sceneWords
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	state.Words = words

	for i := range state.Script.Scenes {
		cues, err := timeline.Build(words[i], s.orc.cfg.Render.MinCaptionSeconds)
		if err != nil {
			return fmt.Errorf("scene %d timeline: %w", i, err)
		}
		if len(cues) == 0 {
			s.logger.Warn("scene has no timed words, rendering without captions",
				logging.Int(logging.FieldScene, i))
			continue
		}
		doc := subtitles.NewDocument(state.Run.Name,
			s.orc.cfg.Render.Width, s.orc.cfg.Render.Height,
			subtitles.DefaultStyle(s.orc.cfg.Render.FontName, s.orc.cfg.Render.FontSize))
		doc.AddCues(cues...)
		rendered, err := doc.Render()
		if err != nil {
			return fmt.Errorf("scene %d subtitles: %w", i, err)
		}
		if err := os.WriteFile(state.Run.SubtitlePath(i), []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("scene %d subtitles: write: %w", i, err)
		}
	}
	s.logger.Info("transcription complete", logging.Int("scenes", len(state.Script.Scenes)))
	return nil
}

func (s *transcribeStage) HealthCheck(context.Context) stage.Health {
	if s.orc.deps.Transcriber == nil {
		return stage.Unhealthy("transcribe", "transcriber not configured")
	}
	return stage.Healthy("transcribe")
}

type renderStage struct {
	orc    *Orchestrator
	logger *slog.Logger
}

func (s *renderStage) Prepare(_ context.Context, state *stage.State) error {
	for i := range state.Script.Scenes {
		for _, path := range []string{state.Run.ImagePath(i), state.Run.AudioPath(i)} {
			if _, err := os.Stat(path); err != nil {
				return services.Wrap(services.ErrMissingAsset, "render", "prepare",
					fmt.Sprintf("scene %d input missing", i), err)
			}
		}
	}
	return nil
}

// Execute renders scenes strictly in order. The sequencing is a resource
// policy, not a data dependency: every render drives the same external
// encoder.
func (s *renderStage) Execute(ctx context.Context, state *stage.State) error {
	clips := make([]ffmpeg.Clip, 0, len(state.Script.Scenes))
	for i := range state.Script.Scenes {
		sceneCtx := services.WithScene(ctx, i)

		duration, err := s.orc.deps.Probe(sceneCtx, state.Run.AudioPath(i))
		if err != nil {
			return fmt.Errorf("scene %d: probe narration duration: %w", i, err)
		}

		subtitlePath := state.Run.SubtitlePath(i)
		if _, err := os.Stat(subtitlePath); err != nil {
			subtitlePath = ""
		}

		clip, err := s.orc.deps.Engine.RenderScene(sceneCtx, ffmpeg.RenderRequest{
			ImagePath:       state.Run.ImagePath(i),
			AudioPath:       state.Run.AudioPath(i),
			SubtitlePath:    subtitlePath,
			DurationSeconds: duration,
			Width:           s.orc.cfg.Render.Width,
			Height:          s.orc.cfg.Render.Height,
			FrameRate:       s.orc.cfg.Render.FrameRate,
			OutputPath:      state.Run.ClipPath(i),
		})
		if err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}

		if rendered, probeErr := s.orc.deps.Probe(sceneCtx, clip.Path); probeErr == nil {
			if drift := math.Abs(rendered - duration); drift > durationTolerance {
				return services.Wrap(services.ErrEncode, "render", "verify",
					fmt.Sprintf("scene %d clip drifts %.2fs from narration", i, drift), nil)
			}
		}
		clips = append(clips, clip)
		s.logger.Info("scene rendered",
			logging.Int(logging.FieldScene, i),
			logging.Float64("duration", duration))
	}
	state.Clips = clips
	return nil
}

func (s *renderStage) HealthCheck(context.Context) stage.Health {
	if s.orc.deps.Engine == nil {
		return stage.Unhealthy("render", "media engine not configured")
	}
	return stage.Healthy("render")
}

type concatStage struct {
	orc    *Orchestrator
	logger *slog.Logger
}

func (s *concatStage) Prepare(_ context.Context, state *stage.State) error {
	if len(state.Clips) == 0 {
		return services.Wrap(services.ErrEmptyInput, "concat", "prepare", "no clips to concatenate", nil)
	}
	for i, clip := range state.Clips {
		if _, err := os.Stat(clip.Path); err != nil {
			return services.Wrap(services.ErrMissingAsset, "concat", "prepare",
				fmt.Sprintf("clip %d missing", i), err)
		}
	}
	return nil
}

func (s *concatStage) Execute(ctx context.Context, state *stage.State) error {
	outputPath := state.Run.FinalPath()
	if err := s.orc.deps.Engine.Concat(ctx, state.Clips, outputPath); err != nil {
		return err
	}
	state.OutputPath = outputPath
	s.logger.Info("final video written", logging.String("output", outputPath))
	return nil
}

func (s *concatStage) HealthCheck(context.Context) stage.Health {
	if s.orc.deps.Engine == nil {
		return stage.Unhealthy("concat", "media engine not configured")
	}
	return stage.Healthy("concat")
}
