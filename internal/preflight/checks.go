package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ytpd/internal/config"
	"ytpd/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReleaseEndpoint verifies the yt-dlp release download location answers.
// Only the deps command uses it; downloads never depend on it.
func CheckReleaseEndpoint(ctx context.Context, client *http.Client, baseURL, asset string) Result {
	const name = "yt-dlp release"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	target := base + "/" + asset
	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, target, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	}
	return Result{Name: name, Detail: fmt.Sprintf("unexpected status (%d)", resp.StatusCode)}
}

// Requirements lists the external tools a download needs for the given config.
// Both the workflow and the deps command build their probes from this list.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YtDlpBinary(),
			Description: "Required for downloading and audio extraction",
			SearchDirs:  []string{cfg.Paths.ToolDir},
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required by yt-dlp for transcoding and thumbnail embedding",
			VerifyArgs:  []string{"-version"},
		},
	}
}

// CheckSystemDeps evaluates the external tools for the given config.
func CheckSystemDeps(ctx context.Context, cfg *config.Config, prober deps.Prober) []deps.Status {
	if cfg == nil {
		return nil
	}
	return prober.Check(ctx, Requirements(cfg))
}
