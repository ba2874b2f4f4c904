package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func newReleaseServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestReleaseInstallWaitsForToolDirLock(t *testing.T) {
	srv := newReleaseServer(t, "#!/bin/sh\nexit 0\n")
	toolDir := t.TempDir()
	installer := ReleaseInstaller{BaseURL: srv.URL, Client: srv.Client()}

	held := flock.New(filepath.Join(toolDir, lockFileName))
	if err := held.Lock(); err != nil {
		t.Fatalf("hold lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*lockRetryDelay)
	defer cancel()
	_, err := installer.Install(ctx, toolDir, "yt-dlp_linux", false)
	if err == nil {
		t.Fatal("expected install to fail while the lock is held")
	}
	if !strings.Contains(err.Error(), "acquire install lock") {
		t.Fatalf("expected lock error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(toolDir, "yt-dlp")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no binary written under a held lock, stat err %v", statErr)
	}

	released := make(chan struct{})
	go func() {
		time.Sleep(2 * lockRetryDelay)
		_ = held.Unlock()
		close(released)
	}()

	start := time.Now()
	path, err := installer.Install(context.Background(), toolDir, "yt-dlp_linux", false)
	if err != nil {
		t.Fatalf("install after release: %v", err)
	}
	<-released
	if elapsed := time.Since(start); elapsed < lockRetryDelay {
		t.Fatalf("install finished in %s without waiting for the lock", elapsed)
	}
	if path != filepath.Join(toolDir, "yt-dlp") {
		t.Fatalf("unexpected install path %q", path)
	}
}

func TestReleaseInstallEmptyBodyKeepsExistingBinary(t *testing.T) {
	srv := newReleaseServer(t, "")
	toolDir := t.TempDir()
	target := filepath.Join(toolDir, "yt-dlp")
	if err := os.WriteFile(target, []byte("working build"), 0o755); err != nil {
		t.Fatalf("seed binary: %v", err)
	}

	installer := ReleaseInstaller{BaseURL: srv.URL, Client: srv.Client()}
	_, err := installer.Install(context.Background(), toolDir, "yt-dlp_linux", false)
	if err == nil || !strings.Contains(err.Error(), "empty response body") {
		t.Fatalf("expected empty body error, got %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("existing binary removed: %v", err)
	}
	if string(got) != "working build" {
		t.Fatalf("existing binary replaced: %q", got)
	}
}
