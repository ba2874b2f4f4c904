package ytdlp

import (
	"strings"

	"ytpd/internal/config"
	"ytpd/internal/request"
)

// Flag values used when the config leaves them unset.
const (
	DefaultAudioQuality           = "0"
	DefaultOutputTemplate         = "%(title)s.%(ext)s"
	DefaultPlaylistOutputTemplate = "%(playlist_index)03d - %(title)s.%(ext)s"
)

// Options holds the download tool settings that are not per-request choices.
type Options struct {
	AudioQuality           string
	OutputTemplate         string
	PlaylistOutputTemplate string
	NoCheckCertificates    bool
	// FFmpegLocation is passed through when ffmpeg resolved to an explicit path.
	FFmpegLocation string
}

// OptionsFromConfig maps the [download] config section onto Options.
func OptionsFromConfig(d config.Download) Options {
	return Options{
		AudioQuality:           d.AudioQuality,
		OutputTemplate:         d.OutputTemplate,
		PlaylistOutputTemplate: d.PlaylistOutputTemplate,
		NoCheckCertificates:    d.NoCheckCertificates,
	}
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.AudioQuality) == "" {
		o.AudioQuality = DefaultAudioQuality
	}
	if strings.TrimSpace(o.OutputTemplate) == "" {
		o.OutputTemplate = DefaultOutputTemplate
	}
	if strings.TrimSpace(o.PlaylistOutputTemplate) == "" {
		o.PlaylistOutputTemplate = DefaultPlaylistOutputTemplate
	}
	return o
}

// BuildArgs returns the yt-dlp argument list for req. The URL is always the
// final argument, preceded by "--" so it is never parsed as a flag.
func BuildArgs(req request.Request, opts Options) []string {
	opts = opts.withDefaults()

	args := []string{
		"-x",
		"--audio-format", req.Format.String(),
		"--audio-quality", opts.AudioQuality,
		"-P", req.Destination,
	}

	template := opts.OutputTemplate
	if req.Playlist {
		template = opts.PlaylistOutputTemplate
	}
	args = append(args, "-o", template)

	if req.EmbedThumbnail {
		args = append(args, "--embed-thumbnail", "--embed-metadata")
	}

	if req.Playlist {
		args = append(args, "--yes-playlist")
	} else {
		args = append(args, "--no-playlist")
	}

	if loc := strings.TrimSpace(opts.FFmpegLocation); loc != "" {
		args = append(args, "--ffmpeg-location", loc)
	}

	args = append(args, "--newline", "--no-warnings", "--ignore-errors")
	if opts.NoCheckCertificates {
		args = append(args, "--no-check-certificates")
	}

	return append(args, "--", strings.TrimSpace(req.URL))
}
