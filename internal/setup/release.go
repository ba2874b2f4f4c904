package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"ytpd/internal/fileutil"
	"ytpd/internal/logging"
)

const (
	defaultDownloadTimeout = 5 * time.Minute
	lockFileName           = ".install.lock"
	lockRetryDelay         = 250 * time.Millisecond
)

// ReleaseAsset returns the yt-dlp release file name for the platform.
// Standalone builds are preferred where upstream publishes one.
func ReleaseAsset(p Platform) string {
	switch p.OS {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	case "linux":
		switch p.Arch {
		case "amd64":
			return "yt-dlp_linux"
		case "arm64":
			return "yt-dlp_linux_aarch64"
		}
	}
	return "yt-dlp"
}

// ReleaseInstaller downloads the official yt-dlp binary into a tool directory.
type ReleaseInstaller struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// Install fetches asset from BaseURL and stores it as toolDir/yt-dlp[.exe].
// Concurrent installs into the same directory are serialised with a file lock.
func (r ReleaseInstaller) Install(ctx context.Context, toolDir, asset string, windows bool) (string, error) {
	toolDir = strings.TrimSpace(toolDir)
	if toolDir == "" {
		return "", fmt.Errorf("tool directory not configured")
	}
	base := strings.TrimRight(strings.TrimSpace(r.BaseURL), "/")
	if base == "" {
		return "", fmt.Errorf("release url not configured")
	}
	logger := logging.NewComponentLogger(r.Logger, "setup")

	name := ToolYtDlp
	if windows {
		name += ".exe"
	}
	target := filepath.Join(toolDir, name)

	if err := ensureDir(toolDir); err != nil {
		return "", err
	}
	lock := flock.New(filepath.Join(toolDir, lockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire install lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("acquire install lock: %s is busy", toolDir)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	url := base + "/" + asset
	logger.Info("downloading yt-dlp release", logging.String("url", url), logging.String("target", target))

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: defaultDownloadTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download yt-dlp: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download yt-dlp: unexpected status %d", resp.StatusCode)
	}

	written, err := fileutil.WriteAtomic(target, resp.Body, 0o755)
	if errors.Is(err, fileutil.ErrEmptySource) {
		return "", fmt.Errorf("download yt-dlp: empty response body")
	}
	if err != nil {
		return "", fmt.Errorf("store yt-dlp: %w", err)
	}

	logger.Debug("yt-dlp release installed", logging.String("path", target), logging.Int("bytes", int(written)))
	return target, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tool directory: %w", err)
	}
	return nil
}
