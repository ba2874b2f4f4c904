package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
}

func TestCheckUnconfiguredCommand(t *testing.T) {
	results := CheckBinaries(context.Background(), []Requirement{{Name: "Empty", Command: "  "}})
	if results[0].Available || results[0].Detail != "command not configured" {
		t.Fatalf("unexpected status %#v", results[0])
	}
}

func TestProberFallsBackToSearchDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	toolDir := t.TempDir()
	target := filepath.Join(toolDir, "yt-dlp")
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	prober := Prober{
		LookPath: func(string) (string, error) { return "", errors.New("not on path") },
	}
	results := prober.Check(context.Background(), []Requirement{{Name: "yt-dlp", Command: "yt-dlp", SearchDirs: []string{"", toolDir}}})
	if !results[0].Available || results[0].Path != target {
		t.Fatalf("expected tool dir fallback, got %#v", results[0])
	}
}

func TestProberSkipsSearchDirsForExplicitPath(t *testing.T) {
	toolDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(toolDir, "yt-dlp"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	prober := Prober{
		LookPath: func(string) (string, error) { return "", errors.New("missing") },
	}
	results := prober.Check(context.Background(), []Requirement{{Name: "yt-dlp", Command: "/opt/none/yt-dlp", SearchDirs: []string{toolDir}}})
	if results[0].Available {
		t.Fatalf("explicit path should not fall back, got %#v", results[0])
	}
}

func TestProberVerifyFailureMarksBroken(t *testing.T) {
	var gotBinary string
	var gotArgs []string
	prober := Prober{
		LookPath: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		Verify: func(_ context.Context, binary string, args ...string) error {
			gotBinary = binary
			gotArgs = args
			return errors.New("exit status 1")
		},
	}
	results := prober.Check(context.Background(), []Requirement{{Name: "FFmpeg", Command: "ffmpeg", VerifyArgs: []string{"-version"}}})
	if results[0].Available {
		t.Fatal("expected failed verification to mark dependency unavailable")
	}
	if gotBinary != "/usr/bin/ffmpeg" || len(gotArgs) != 1 || gotArgs[0] != "-version" {
		t.Fatalf("unexpected verify call %q %v", gotBinary, gotArgs)
	}
	if results[0].Path != "/usr/bin/ffmpeg" {
		t.Fatalf("expected path retained, got %q", results[0].Path)
	}
}

func TestRunQuietReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	dir := t.TempDir()
	broken := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(broken, []byte("#!/bin/sh\necho 'libavcodec missing' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	results := CheckBinaries(context.Background(), []Requirement{{Name: "FFmpeg", Command: broken, VerifyArgs: []string{"-version"}}})
	if results[0].Available {
		t.Fatal("expected broken binary to be unavailable")
	}
	if want := "libavcodec missing"; !strings.Contains(results[0].Detail, want) {
		t.Fatalf("expected %q in detail %q", want, results[0].Detail)
	}
}

func TestMissingIgnoresOptional(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b"},
		{Name: "c", Optional: true},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "b" {
		t.Fatalf("unexpected missing set %#v", missing)
	}
}
