package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytpd/internal/deps"
	"ytpd/internal/preflight"
	"ytpd/internal/services"
	"ytpd/internal/setup"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var install bool
	var checkRelease bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Report (and optionally install) yt-dlp and FFmpeg",
		Long: "Report whether yt-dlp and FFmpeg can be found and run.\n\n" +
			"With --install, missing tools are installed through the platform package\n" +
			"manager (or the yt-dlp release binary) without asking, regardless of\n" +
			"tools.auto_install.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			prep := setup.New(setup.Options{
				Config: cfg,
				Out:    ctx.statusWriter(cmd),
				Logger: logger,
			})
			runCtx := commandContextOrBackground(cmd)

			statuses := prep.Check(runCtx)
			missing := deps.Missing(statuses)
			if install && len(missing) > 0 {
				if _, err := prep.Install(runCtx, setup.ToolNames(missing)); err != nil {
					return err
				}
				statuses = prep.Check(runCtx)
				missing = deps.Missing(statuses)
			}

			fmt.Fprintln(out, renderTable([]string{"Tool", "Status", "Path", "Detail"}, depsRows(statuses)))

			painter := newStatusPainter(out)
			for _, status := range statuses {
				kind, message := statusOK, status.Path
				if !status.Available {
					kind, message = statusError, status.Detail
				}
				fmt.Fprintln(out, painter.line(status.Name, kind, message))
			}

			if checkRelease {
				asset := setup.ReleaseAsset(setup.DetectPlatform())
				result := preflight.CheckReleaseEndpoint(runCtx, nil, cfg.Tools.YtDlpReleaseURL, asset)
				kind := statusOK
				if !result.Passed {
					kind = statusWarn
				}
				fmt.Fprintln(out, painter.line(result.Name, kind, result.Detail))
			}

			if len(missing) > 0 {
				return services.Wrap(
					services.ErrMissingDependency,
					"cli",
					"deps",
					"required tools missing: "+strings.Join(setup.ToolNames(missing), ", ")+" (run `ytpd deps --install`)",
					nil,
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "Install missing tools without prompting")
	cmd.Flags().BoolVar(&checkRelease, "check-release", false, "Also check that the yt-dlp release download is reachable")
	return cmd
}

func depsRows(statuses []deps.Status) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "available"
		if !status.Available {
			state = "missing"
		}
		path := status.Path
		if path == "" {
			path = status.Command
		}
		rows = append(rows, []string{status.Name, state, path, status.Detail})
	}
	return rows
}
