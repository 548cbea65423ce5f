package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tubedigest/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

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
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.WriteSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set sources.channels and the API keys (or export OPENAI_API_KEY, GROQ_API_KEY).")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "channels:          %s\n", strings.Join(cfg.Sources.Channels, ", "))
			fmt.Fprintf(out, "listing:           %s\n", cfg.Sources.Listing)
			fmt.Fprintf(out, "items per source:  %d\n", cfg.Sources.ItemsPerSource)
			fmt.Fprintf(out, "window:            -%dd .. +%dd\n", cfg.Window.DaysBack, cfg.Window.DaysForward)
			fmt.Fprintf(out, "workers:           %d sources, %d items\n", cfg.Workers.SourceWidth, cfg.Workers.ItemWidth)
			fmt.Fprintf(out, "data dir:          %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "transcript dir:    %s\n", cfg.Paths.TranscriptDir)
			fmt.Fprintf(out, "audio dir:         %s\n", cfg.Paths.AudioDir)
			fmt.Fprintf(out, "log dir:           %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "openai model:      %s\n", cfg.OpenAI.Model)
			fmt.Fprintf(out, "transcriber model: %s\n", cfg.Transcriber.Model)
			fmt.Fprintf(out, "postmark:          %s\n", yesNo(cfg.Postmark.ServerToken != ""))
			fmt.Fprintf(out, "logging:           %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}
