package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ytpd/internal/request"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DownloadDir string `toml:"download_dir"`
	ToolDir     string `toml:"tool_dir"`
	LogDir      string `toml:"log_dir"`
}

// Download contains the default preferences applied to every request and the
// download tool flag values that are not user-facing choices.
type Download struct {
	Format                 string `toml:"format"`
	EmbedThumbnail         bool   `toml:"embed_thumbnail"`
	AudioQuality           string `toml:"audio_quality"`
	OutputTemplate         string `toml:"output_template"`
	PlaylistOutputTemplate string `toml:"playlist_output_template"`
	NoCheckCertificates    bool   `toml:"no_check_certificates"`
}

// Tools contains external binary locations and install behaviour.
type Tools struct {
	YtDlp           string `toml:"ytdlp"`
	FFmpeg          string `toml:"ffmpeg"`
	AutoInstall     bool   `toml:"auto_install"`
	YtDlpReleaseURL string `toml:"ytdlp_release_url"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ytpd.
//
// Configuration sections:
//   - Paths: default destination, tool install directory, log directory
//   - Download: default format/thumbnail choice and download tool flag values
//   - Tools: explicit binary paths and auto-install behaviour
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Download Download `toml:"download"`
	Tools    Tools    `toml:"tools"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ytpd.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories ytpd writes to outside the
// download destination.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.ToolDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DefaultFormat returns the configured default audio format.
func (c *Config) DefaultFormat() request.Format {
	f, err := request.ParseFormat(c.Download.Format)
	if err != nil {
		return request.DefaultFormat
	}
	return f
}

// DownloadBase returns the configured default destination, falling back to
// workingDir when no download directory is set.
func (c *Config) DownloadBase(workingDir string) string {
	if strings.TrimSpace(c.Paths.DownloadDir) != "" {
		return c.Paths.DownloadDir
	}
	return workingDir
}

// YtDlpBinary returns the configured yt-dlp executable name or path.
func (c *Config) YtDlpBinary() string {
	if v := strings.TrimSpace(c.Tools.YtDlp); v != "" {
		return v
	}
	return "yt-dlp"
}

// FFmpegBinary returns the configured ffmpeg executable name or path.
func (c *Config) FFmpegBinary() string {
	if v := strings.TrimSpace(c.Tools.FFmpeg); v != "" {
		return v
	}
	return "ffmpeg"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
