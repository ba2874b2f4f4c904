package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"ytpd/internal/request"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownload() error {
	if _, err := request.ParseFormat(c.Download.Format); err != nil {
		return fmt.Errorf("download.format: %w", err)
	}
	if strings.TrimSpace(c.Download.OutputTemplate) == "" {
		return errors.New("download.output_template must be set")
	}
	if strings.TrimSpace(c.Download.PlaylistOutputTemplate) == "" {
		return errors.New("download.playlist_output_template must be set")
	}
	if strings.ContainsAny(c.Download.AudioQuality, " \t") {
		return fmt.Errorf("download.audio_quality must be a single value, got %q", c.Download.AudioQuality)
	}
	return nil
}

func (c *Config) validateTools() error {
	parsed, err := url.Parse(c.Tools.YtDlpReleaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tools.ytdlp_release_url must be an absolute URL, got %q", c.Tools.YtDlpReleaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
