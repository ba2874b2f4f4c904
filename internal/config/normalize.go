package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		if value, ok := os.LookupEnv("YTPD_DOWNLOAD_DIR"); ok {
			c.Paths.DownloadDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DownloadDir, err = expandPath(strings.TrimSpace(c.Paths.DownloadDir)); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ToolDir) == "" {
		c.Paths.ToolDir = defaultToolDir
	}
	if c.Paths.ToolDir, err = expandPath(c.Paths.ToolDir); err != nil {
		return fmt.Errorf("paths.tool_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.Format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Download.Format)), ".")
	if c.Download.Format == "" {
		c.Download.Format = defaultFormat
	}
	c.Download.AudioQuality = strings.TrimSpace(c.Download.AudioQuality)
	if c.Download.AudioQuality == "" {
		c.Download.AudioQuality = defaultAudioQuality
	}
	c.Download.OutputTemplate = strings.TrimSpace(c.Download.OutputTemplate)
	if c.Download.OutputTemplate == "" {
		c.Download.OutputTemplate = defaultOutputTemplate
	}
	c.Download.PlaylistOutputTemplate = strings.TrimSpace(c.Download.PlaylistOutputTemplate)
	if c.Download.PlaylistOutputTemplate == "" {
		c.Download.PlaylistOutputTemplate = defaultPlaylistOutputTemplate
	}
}

func (c *Config) normalizeTools() error {
	var err error
	c.Tools.YtDlp = strings.TrimSpace(c.Tools.YtDlp)
	if c.Tools.YtDlp == "" {
		if value, ok := os.LookupEnv("YTPD_YTDLP"); ok {
			c.Tools.YtDlp = strings.TrimSpace(value)
		}
	}
	if c.Tools.YtDlp, err = expandToolPath(c.Tools.YtDlp); err != nil {
		return fmt.Errorf("tools.ytdlp: %w", err)
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		if value, ok := os.LookupEnv("YTPD_FFMPEG"); ok {
			c.Tools.FFmpeg = strings.TrimSpace(value)
		}
	}
	if c.Tools.FFmpeg, err = expandToolPath(c.Tools.FFmpeg); err != nil {
		return fmt.Errorf("tools.ffmpeg: %w", err)
	}
	c.Tools.YtDlpReleaseURL = strings.TrimRight(strings.TrimSpace(c.Tools.YtDlpReleaseURL), "/")
	if c.Tools.YtDlpReleaseURL == "" {
		c.Tools.YtDlpReleaseURL = defaultYtDlpReleaseURL
	}
	return nil
}

// expandToolPath expands values that look like paths and leaves bare command
// names for PATH lookup.
func expandToolPath(value string) (string, error) {
	if value == "" || !strings.ContainsAny(value, `/\~`) {
		return value, nil
	}
	return expandPath(value)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
