package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"ytpd/internal/logging"
	"ytpd/internal/prompt"
	"ytpd/internal/request"
	"ytpd/internal/services"
)

const (
	typeSingle   = "Single Song"
	typePlaylist = "Playlist"

	destCurrent   = "Current directory"
	destSubfolder = "New subfolder"
)

// Mode names how the request was gathered.
type Mode string

const (
	ModeDirect      Mode = "direct"
	ModeInteractive Mode = "interactive"
)

// Preferences are the defaults a request starts from: config values with
// command-line flags applied on top.
type Preferences struct {
	Format         request.Format
	EmbedThumbnail bool
	// Playlist forces single/playlist mode; nil infers it from the URL.
	Playlist *bool
	// Base is the destination directory; relative paths resolve against WorkingDir.
	Base      string
	Subfolder string
}

// Collector builds a request.Request from arguments or prompts.
type Collector struct {
	Prompter   prompt.Prompter
	FS         request.FS
	WorkingDir string
	Out        io.Writer
	Logger     *slog.Logger
}

// ModeFor reports which mode Collect will use for args.
func ModeFor(args []string) Mode {
	if len(args) > 0 {
		return ModeDirect
	}
	return ModeInteractive
}

// Collect returns a populated request. A URL argument selects direct mode,
// which never prompts; otherwise the operator is asked for each choice.
func (c *Collector) Collect(ctx context.Context, args []string, prefs Preferences) (request.Request, error) {
	if ModeFor(args) == ModeDirect {
		return c.direct(ctx, args[0], prefs)
	}
	return c.interactive(ctx, prefs)
}

func (c *Collector) direct(ctx context.Context, rawURL string, prefs Preferences) (request.Request, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return request.Request{}, invalid("url", "URL cannot be empty", nil)
	}

	playlist := request.LooksLikePlaylist(url)
	if prefs.Playlist != nil {
		playlist = *prefs.Playlist
	}
	if !playlist && request.IsPlaylistOnly(url) {
		return request.Request{}, playlistOnlyError()
	}

	dest, err := c.resolve(prefs.Base, prefs.Subfolder)
	if err != nil {
		return request.Request{}, err
	}

	req := request.Request{
		URL:            url,
		Destination:    dest,
		Format:         formatOrDefault(prefs.Format),
		EmbedThumbnail: prefs.EmbedThumbnail,
		Playlist:       playlist,
	}
	c.downgradeThumbnail(ctx, &req)
	return req, nil
}

func (c *Collector) interactive(ctx context.Context, prefs Preferences) (request.Request, error) {
	p := c.Prompter
	if p == nil {
		return request.Request{}, invalid("prompt", "no URL given and no terminal available for prompts", nil)
	}

	url, err := p.Input("Enter the URL", "", validateURL)
	if err != nil {
		return request.Request{}, err
	}
	url = strings.TrimSpace(url)

	playlistDefault := request.LooksLikePlaylist(url)
	if prefs.Playlist != nil {
		playlistDefault = *prefs.Playlist
	}
	typeIdx, err := p.Select("Download type", []string{typeSingle, typePlaylist}, boolIndex(playlistDefault))
	if err != nil {
		return request.Request{}, err
	}
	playlist := typeIdx == 1
	if !playlist && request.IsPlaylistOnly(url) {
		return request.Request{}, playlistOnlyError()
	}

	base := c.base(prefs.Base)
	destChoices := []string{fmt.Sprintf("%s (%s)", destCurrent, base), destSubfolder}
	destIdx, err := p.Select("Save to", destChoices, boolIndex(strings.TrimSpace(prefs.Subfolder) != ""))
	if err != nil {
		return request.Request{}, err
	}
	subfolder := ""
	if destIdx == 1 {
		subfolder, err = p.Input("Folder name", strings.TrimSpace(prefs.Subfolder), validateFolder)
		if err != nil {
			return request.Request{}, err
		}
		if _, err := request.CleanSubfolder(subfolder); err != nil {
			return request.Request{}, invalid("destination", fmt.Sprintf("invalid subfolder %q", subfolder), err)
		}
	}

	formats := request.Formats()
	defaultFormat := formatOrDefault(prefs.Format)
	labels := make([]string, len(formats))
	for i, f := range formats {
		labels[i] = f.Label()
	}
	formatIdx, err := p.Select("Audio format", labels, indexOf(formats, defaultFormat))
	if err != nil {
		return request.Request{}, err
	}
	format := formats[formatIdx]

	thumbnail := false
	if format.SupportsThumbnail() {
		thumbnail, err = p.Confirm("Embed thumbnail as cover art?", prefs.EmbedThumbnail)
		if err != nil {
			return request.Request{}, err
		}
	} else {
		fmt.Fprintf(c.out(), "Thumbnail embedding is not supported for %s; skipping.\n", format.Label())
	}

	// Nothing is created on disk until every answer is in.
	dest, err := c.resolve(prefs.Base, subfolder)
	if err != nil {
		return request.Request{}, err
	}

	req := request.Request{
		URL:            url,
		Destination:    dest,
		Format:         format,
		EmbedThumbnail: thumbnail,
		Playlist:       playlist,
	}
	logging.WithContext(ctx, c.logger()).Debug("request collected",
		logging.String("format", req.Format.String()),
		logging.String("destination", req.Destination),
		logging.String("mode", req.Mode()),
	)
	return req, nil
}

// downgradeThumbnail turns off embedding for containers that cannot carry artwork.
func (c *Collector) downgradeThumbnail(ctx context.Context, req *request.Request) {
	if !req.EmbedThumbnail || req.Format.SupportsThumbnail() {
		return
	}
	req.EmbedThumbnail = false
	logging.WithContext(ctx, c.logger()).Warn("thumbnail embedding disabled",
		logging.String("format", req.Format.String()),
		logging.String("reason", "container cannot carry cover art"),
	)
	fmt.Fprintf(c.out(), "Note: %s files cannot embed thumbnails; downloading without cover art.\n", req.Format.Label())
}

func (c *Collector) resolve(base, subfolder string) (string, error) {
	dest, err := request.ResolveDestination(c.FS, c.base(base), subfolder)
	if err != nil {
		if errors.Is(err, request.ErrUnsafeSubfolder) {
			return "", invalid("destination", fmt.Sprintf("invalid subfolder %q", subfolder), err)
		}
		return "", invalid("destination", "cannot prepare destination", err)
	}
	return dest, nil
}

func (c *Collector) base(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return c.WorkingDir
	}
	if !filepath.IsAbs(base) && c.WorkingDir != "" {
		return filepath.Join(c.WorkingDir, base)
	}
	return base
}

func (c *Collector) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func (c *Collector) logger() *slog.Logger {
	return logging.NewComponentLogger(c.Logger, "collector")
}

func validateURL(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("URL cannot be empty")
	}
	return nil
}

func validateFolder(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("folder name cannot be empty")
	}
	return nil
}

func playlistOnlyError() error {
	return invalid("download type", "this is a playlist URL; choose Playlist or provide a single video URL", nil)
}

func invalid(operation, message string, err error) error {
	return services.Wrap(services.ErrInvalidInput, "collector", operation, message, err)
}

func formatOrDefault(f request.Format) request.Format {
	if f.Valid() {
		return f
	}
	return request.DefaultFormat
}

func indexOf(formats []request.Format, f request.Format) int {
	for i, candidate := range formats {
		if candidate == f {
			return i
		}
	}
	return 0
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
