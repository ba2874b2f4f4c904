package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"ytpd/internal/collector"
	"ytpd/internal/logging"
	"ytpd/internal/request"
	"ytpd/internal/services"
	"ytpd/internal/setup"
	"ytpd/internal/spinner"
	"ytpd/internal/ytdlp"
)

// RequestCollector builds the download request for one invocation.
type RequestCollector interface {
	Collect(ctx context.Context, args []string, prefs collector.Preferences) (request.Request, error)
}

// EnvironmentPreparer resolves (and if needed installs) the external tools.
type EnvironmentPreparer interface {
	Ensure(ctx context.Context) (setup.Tools, error)
}

// Downloader runs the download tool for a request.
type Downloader interface {
	Download(ctx context.Context, req request.Request, onProgress ytdlp.ProgressFunc) (ytdlp.Result, error)
}

// PreflightFunc validates the destination before any tool runs.
type PreflightFunc func(ctx context.Context, destination string) error

// Input carries the command-line arguments and resolved preferences.
type Input struct {
	Args        []string
	Preferences collector.Preferences
}

// Runner composes collection, preflight, environment preparation and download.
type Runner struct {
	Collector     RequestCollector
	Preparer      EnvironmentPreparer
	NewDownloader func(setup.Tools) Downloader
	Preflight     PreflightFunc
	Indicator     spinner.Indicator
	Out           io.Writer
	Logger        *slog.Logger
	// NewRequestID defaults to uuid.NewString.
	NewRequestID func() string
}

// Run performs one invocation end to end. The returned error carries a
// services marker suitable for services.ExitCode.
func (r *Runner) Run(ctx context.Context, in Input) (ytdlp.Result, error) {
	if r.Collector == nil || r.Preparer == nil || r.NewDownloader == nil {
		return ytdlp.Result{}, fmt.Errorf("workflow runner not fully configured")
	}
	newID := r.NewRequestID
	if newID == nil {
		newID = uuid.NewString
	}
	ctx = services.WithRequestID(ctx, newID())
	ctx = services.WithMode(ctx, string(collector.ModeFor(in.Args)))
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, "workflow"))
	out := r.out()

	logger.Debug("collecting request")
	req, err := r.Collector.Collect(ctx, in.Args, in.Preferences)
	if err != nil {
		return ytdlp.Result{}, r.fail(logger, "collect", err)
	}
	logger.Info("request collected",
		logging.String("url", req.URL),
		logging.String("format", req.Format.String()),
		logging.String("destination", req.Destination),
		logging.String("download_type", req.Mode()),
		logging.Bool("thumbnail", req.EmbedThumbnail),
	)

	if r.Preflight != nil {
		if err := r.Preflight(ctx, req.Destination); err != nil {
			return ytdlp.Result{}, r.fail(logger, "preflight", err)
		}
	}

	tools, err := r.Preparer.Ensure(ctx)
	if err != nil {
		return ytdlp.Result{}, r.fail(logger, "prepare", err)
	}

	indicator := r.Indicator
	if indicator == nil {
		indicator = spinner.Nop{}
	}
	downloader := r.NewDownloader(tools)

	indicator.Start("Downloading...")
	result, err := downloader.Download(ctx, req, func(p ytdlp.Progress) {
		indicator.Update(p.Describe())
	})
	indicator.Stop()
	if err != nil {
		return result, r.fail(logger, "download", err)
	}

	fmt.Fprintln(out, "Download completed!")
	if n := len(result.Files); n > 0 {
		noun := "files"
		if n == 1 {
			noun = "file"
		}
		fmt.Fprintf(out, "Saved %d %s to %s\n", n, noun, req.Destination)
	}
	logger.Info("download completed",
		logging.String("state", result.State.String()),
		logging.Int("files", len(result.Files)),
	)
	return result, nil
}

func (r *Runner) fail(logger *slog.Logger, step string, err error) error {
	level := slog.LevelError
	if services.IsCancelled(err) {
		level = slog.LevelInfo
	}
	logger.Log(context.Background(), level, "workflow step failed",
		logging.String("step", step),
		logging.String(logging.FieldErrorKind, services.Kind(err)),
		logging.Error(err),
	)
	return err
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}
