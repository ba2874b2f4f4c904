package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytpd/internal/config"
	"ytpd/internal/logging"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the ytpd configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("inspect %s: %w", target, statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.download_dir to choose where downloads land by default.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the file (default ~/.config/ytpd/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return "", fmt.Errorf("--path: %w", err)
		}
		return expanded, nil
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("default config path: %w", err)
	}
	return path, nil
}

// newConfigValidateCommand loads the file itself so a broken config is
// reported here rather than by the root pre-run hook.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show the effective settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			source := resolved
			if !exists {
				source += " (not found, using defaults)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, settingsRows(cfg, source)))
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}
}

func settingsRows(cfg *config.Config, source string) [][]string {
	downloadBase := cfg.Paths.DownloadDir
	if downloadBase == "" {
		downloadBase = "(current directory)"
	}
	ffmpeg := cfg.FFmpegBinary()
	if cfg.Tools.FFmpeg == "" {
		ffmpeg += " (PATH)"
	}
	return [][]string{
		{"Config file", source},
		{"Download base", downloadBase},
		{"Tool directory", cfg.Paths.ToolDir},
		{"Log file", filepath.Join(cfg.Paths.LogDir, logging.LogFileName)},
		{"Default format", cfg.DefaultFormat().String()},
		{"Embed thumbnail", strconv.FormatBool(cfg.Download.EmbedThumbnail)},
		{"Audio quality", cfg.Download.AudioQuality},
		{"Output template", cfg.Download.OutputTemplate},
		{"Playlist template", cfg.Download.PlaylistOutputTemplate},
		{"yt-dlp", cfg.YtDlpBinary()},
		{"FFmpeg", ffmpeg},
		{"Auto install", strconv.FormatBool(cfg.Tools.AutoInstall)},
		{"Logging", cfg.Logging.Format + ", " + cfg.Logging.Level},
	}
}
