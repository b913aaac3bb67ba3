package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shortreel/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set the provider API keys before generating a video.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"output_dir", cfg.Paths.OutputDir},
				{"state_dir", cfg.Paths.StateDir},
				{"log_dir", cfg.Paths.LogDir},
				{"llm model", cfg.LLM.Model},
				{"llm key set", yesNo(cfg.LLM.APIKey != "")},
				{"images model", cfg.Images.Model},
				{"images key set", yesNo(cfg.Images.APIKey != "")},
				{"speech model", cfg.Speech.Model},
				{"speech key set", yesNo(cfg.Speech.APIKey != "")},
				{"transcriber", cfg.Transcriber.Command},
				{"resolution", fmt.Sprintf("%dx%d @ %d fps", cfg.Render.Width, cfg.Render.Height, cfg.Render.FrameRate)},
				{"min caption seconds", fmt.Sprintf("%.2f", cfg.Render.MinCaptionSeconds)},
				{"ntfy topic set", yesNo(cfg.Notifications.NtfyTopic != "")},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate a configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolved, exists, err := config.Load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !exists {
				fmt.Fprintf(out, "No configuration file found; defaults are valid (would load from %s)\n", resolved)
				return nil
			}
			if err := cfg.ValidateProviders(); err != nil {
				fmt.Fprintf(out, "Configuration at %s is structurally valid but incomplete:\n  %v\n", resolved, err)
				return nil
			}
			fmt.Fprintf(out, "Configuration at %s is valid.\n", resolved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "path", "p", "", "Configuration file to validate")
	return cmd
}
