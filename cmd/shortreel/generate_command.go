package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shortreel/internal/deps"
	"shortreel/internal/logging"
	"shortreel/internal/media/ffmpeg"
	"shortreel/internal/notifications"
	"shortreel/internal/pipeline"
	"shortreel/internal/queue"
	"shortreel/internal/services/images"
	"shortreel/internal/services/llm"
	"shortreel/internal/services/speech"
	"shortreel/internal/services/whisper"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var name string
	var promptFile string

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Run the full pipeline for one prompt",
		Long: `Generate a vertical short-form video from a text prompt: script, per-scene
images and narration, word-level captions, rendered scene clips, and the
concatenated final video. The prompt can be given as an argument, read from
a file with --prompt-file, or piped on stdin with --prompt-file -.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			prompt, err := resolvePrompt(cmd.InOrStdin(), args, promptFile)
			if err != nil {
				return err
			}
			if name == "" {
				name = "video"
			}

			if err := cfg.ValidateProviders(); err != nil {
				return err
			}
			if missing := deps.MissingRequired(deps.CheckBinaries(deps.Required(cfg))); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
				}
				return fmt.Errorf("missing required binaries: %s", strings.Join(names, ", "))
			}

			logger, err := logging.NewForDir(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := ffmpeg.NewEngine(
				cfg.Render.FFmpegBinary,
				cfg.Render.FFprobeBinary,
				filepath.Join(cfg.Paths.StateDir, "encoder.lock"),
				logger,
			)

			orchestrator := pipeline.NewOrchestrator(cfg, pipeline.Dependencies{
				Store:    store,
				Notifier: notifications.NewService(cfg),
				Script: llm.NewClient(llm.Config{
					APIKey:         cfg.LLM.APIKey,
					BaseURL:        cfg.LLM.BaseURL,
					Model:          cfg.LLM.Model,
					Referer:        cfg.LLM.Referer,
					Title:          cfg.LLM.Title,
					TimeoutSeconds: cfg.LLM.TimeoutSeconds,
				}),
				Images: images.NewClient(images.Config{
					APIKey:         cfg.Images.APIKey,
					BaseURL:        cfg.Images.BaseURL,
					Model:          cfg.Images.Model,
					Size:           cfg.Images.Size,
					TimeoutSeconds: cfg.Images.TimeoutSeconds,
				}),
				Speech: speech.NewClient(speech.Config{
					APIKey:         cfg.Speech.APIKey,
					BaseURL:        cfg.Speech.BaseURL,
					Model:          cfg.Speech.Model,
					Voice:          cfg.Speech.Voice,
					TimeoutSeconds: cfg.Speech.TimeoutSeconds,
				}),
				Transcriber: whisper.NewService(whisper.Config{
					Command:        cfg.Transcriber.Command,
					Model:          cfg.Transcriber.Model,
					Language:       cfg.Transcriber.Language,
					TimeoutSeconds: cfg.Transcriber.TimeoutSeconds,
				}),
				Engine: engine,
			}, logger)

			result, err := orchestrator.Execute(cmd.Context(), name, prompt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s completed in %s\n", result.Run.ID, result.Elapsed.Round(time.Second))
			fmt.Fprintf(out, "Scenes: %d\n", result.SceneCount)
			fmt.Fprintf(out, "Output: %s\n", result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name used for the run directory")
	cmd.Flags().StringVarP(&promptFile, "prompt-file", "f", "", "Read the prompt from a file (- for stdin)")
	return cmd
}

func resolvePrompt(stdin io.Reader, args []string, promptFile string) (string, error) {
	switch {
	case promptFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read prompt from stdin: %w", err)
		}
		return validatePrompt(string(data))
	case promptFile != "":
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		return validatePrompt(string(data))
	case len(args) == 1:
		return validatePrompt(args[0])
	default:
		return "", fmt.Errorf("a prompt is required (argument, --prompt-file, or stdin)")
	}
}

func validatePrompt(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}
	return prompt, nil
}
