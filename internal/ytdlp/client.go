package ytdlp

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"ytpd/internal/logging"
	"ytpd/internal/procexec"
	"ytpd/internal/request"
	"ytpd/internal/services"
)

const errorTailLines = 20

// ProgressFunc receives progress snapshots while yt-dlp runs.
type ProgressFunc func(Progress)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom command executor (primarily for tests).
func WithExecutor(exec procexec.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger; yt-dlp output lines are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "ytdlp")
	}
}

// WithOptions overrides the non-request flag values.
func WithOptions(opts Options) Option {
	return func(c *Client) {
		c.options = opts
	}
}

// Client wraps the yt-dlp CLI.
type Client struct {
	binary  string
	exec    procexec.Executor
	options Options
	logger  *slog.Logger
}

// New constructs a yt-dlp client for the given binary.
func New(binary string, opts ...Option) *Client {
	client := &Client{
		binary: strings.TrimSpace(binary),
		exec:   procexec.Command{},
		logger: logging.NewComponentLogger(nil, "ytdlp"),
	}
	if client.binary == "" {
		client.binary = "yt-dlp"
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Download runs yt-dlp for req and blocks until it exits. The child's exit
// status decides the outcome; nothing is retried or cleaned up.
func (c *Client) Download(ctx context.Context, req request.Request, onProgress ProgressFunc) (Result, error) {
	result := Result{State: StateNotStarted}
	if err := req.Validate(); err != nil {
		return result, services.Wrap(services.ErrInvalidInput, "ytdlp", "download", "invalid request", err)
	}

	args := BuildArgs(req, c.options)
	logger := logging.WithContext(ctx, c.logger)
	logger.Info("starting yt-dlp",
		logging.String("url", req.URL),
		logging.String("format", req.Format.String()),
		logging.String("destination", req.Destination),
		logging.String("mode", req.Mode()),
		logging.Bool("thumbnail", req.EmbedThumbnail),
	)
	logger.Debug("yt-dlp command", logging.String("binary", c.binary), logging.Strings("args", args))

	tail := procexec.NewTail(errorTailLines)
	tracker := &tracker{}
	result.State = StateRunning

	err := c.exec.Run(ctx, c.binary, args, func(stream procexec.Stream, line string) {
		logger.Debug("yt-dlp output", logging.String("stream", stream.String()), logging.String("line", line))
		ev := parseLine(line)
		if stream == procexec.Stderr || ev.kind == eventError {
			if strings.TrimSpace(line) != "" {
				tail.Add(line)
			}
		}
		if snapshot, changed := tracker.apply(ev); changed && onProgress != nil {
			onProgress(snapshot)
		}
	})

	result.Files, result.Items = tracker.summary()
	result.Errors = tail.Lines()

	if err != nil {
		result.State = StateFailed
		if ctx.Err() != nil {
			return result, services.Wrap(services.ErrCancelled, "ytdlp", "download", "interrupted", ctx.Err())
		}
		exitErr := &ExitError{Status: procexec.ExitCode(err), Lines: result.Errors, cause: err}
		logger.Error("yt-dlp failed",
			logging.Error(err),
			logging.Int("status", exitErr.Status),
			logging.String(logging.FieldErrorKind, services.Kind(services.ErrExternalTool)),
			logging.Int("error_lines", len(result.Errors)),
		)
		return result, exitErr
	}

	result.State = StateSucceeded
	if result.Items == 0 {
		result.Items = 1
	}
	logger.Info("yt-dlp finished",
		logging.Int("files", len(result.Files)),
		logging.Int("items", result.Items),
	)
	return result, nil
}

// tracker folds parsed output lines into a progress snapshot. Both scanner
// goroutines feed it.
type tracker struct {
	mu       sync.Mutex
	progress Progress
	files    []string
}

func (t *tracker) apply(ev event) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.kind {
	case eventPercent:
		t.progress.Percent = ev.percent
	case eventItem:
		t.progress.Item = ev.item
		t.progress.Items = ev.items
		t.progress.Percent = 0
	case eventDestination:
		t.progress.Message = "Downloading " + ev.text
		t.progress.Percent = 0
	case eventFile:
		t.files = append(t.files, ev.text)
		t.progress.Message = "Extracting audio: " + filepath.Base(ev.text)
		t.progress.Percent = 0
	default:
		return t.progress, false
	}
	return t.progress, true
}

func (t *tracker) summary() ([]string, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.files...), t.progress.Items
}
