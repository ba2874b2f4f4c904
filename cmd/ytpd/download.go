package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytpd/internal/collector"
	"ytpd/internal/config"
	"ytpd/internal/request"
	"ytpd/internal/services"
	"ytpd/internal/setup"
	"ytpd/internal/workflow"
	"ytpd/internal/ytdlp"
)

func runDownload(cmd *cobra.Command, ctx *commandContext, flags downloadFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	prefs, err := preferencesFromFlags(cfg, flags)
	if err != nil {
		return err
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, "cli", "working directory", "cannot determine current directory", err)
	}

	status := ctx.statusWriter(cmd)
	mode := collector.ModeFor(args)

	coll := &collector.Collector{
		FS:         request.OSFS{},
		WorkingDir: workingDir,
		Out:        status,
		Logger:     logger,
	}
	// Direct mode never prompts, so the preparer only gets a prompter interactively.
	prepOpts := setup.Options{
		Config: cfg,
		Out:    status,
		Logger: logger,
	}
	if mode == collector.ModeInteractive {
		p := ctx.prompter(cmd)
		coll.Prompter = p
		prepOpts.Prompter = p
	}

	options := ytdlp.OptionsFromConfig(cfg.Download)
	runner := &workflow.Runner{
		Collector: coll,
		Preparer:  setup.New(prepOpts),
		NewDownloader: func(tools setup.Tools) workflow.Downloader {
			opts := options
			if cfg.Tools.FFmpeg != "" {
				opts.FFmpegLocation = tools.FFmpeg
			}
			return ytdlp.New(tools.YtDlp, ytdlp.WithOptions(opts), ytdlp.WithLogger(logger))
		},
		Preflight: workflow.DestinationPreflight(cfg.Paths.ToolDir, logger),
		Indicator: ctx.indicator(cmd),
		Out:       status,
		Logger:    logger,
	}

	_, err = runner.Run(commandContextOrBackground(cmd), workflow.Input{Args: args, Preferences: prefs})
	return err
}

func preferencesFromFlags(cfg *config.Config, flags downloadFlags) (collector.Preferences, error) {
	prefs := collector.Preferences{
		Format:         cfg.DefaultFormat(),
		EmbedThumbnail: cfg.Download.EmbedThumbnail,
		Base:           cfg.Paths.DownloadDir,
		Subfolder:      strings.TrimSpace(flags.subdir),
	}
	if v := strings.TrimSpace(flags.format); v != "" {
		format, err := request.ParseFormat(v)
		if err != nil {
			return prefs, services.Wrap(services.ErrInvalidInput, "cli", "--format", err.Error(), nil)
		}
		prefs.Format = format
	}
	if v := strings.TrimSpace(flags.dest); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return prefs, services.Wrap(services.ErrInvalidInput, "cli", "--dest", "cannot expand path", err)
		}
		prefs.Base = expanded
	}
	switch {
	case flags.thumbnail:
		prefs.EmbedThumbnail = true
	case flags.noThumbnail:
		prefs.EmbedThumbnail = false
	}
	switch {
	case flags.playlist:
		v := true
		prefs.Playlist = &v
	case flags.single:
		v := false
		prefs.Playlist = &v
	}
	return prefs, nil
}

func commandContextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
