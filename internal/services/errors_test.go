package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ytpd/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ytdlp", "download", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ytdlp", "download", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"missing", services.Wrap(services.ErrMissingDependency, "setup", "ffmpeg", "not found", nil), services.ExitFailure},
		{"install", services.Wrap(services.ErrInstallFailure, "setup", "brew", "", errors.New("exit 1")), services.ExitFailure},
		{"invalid", services.Wrap(services.ErrInvalidInput, "collector", "url", "empty", nil), services.ExitFailure},
		{"tool", services.Wrap(services.ErrExternalTool, "ytdlp", "run", "", nil), services.ExitFailure},
		{"cancelled", services.Wrap(services.ErrCancelled, "prompt", "", "", nil), services.ExitCancelled},
		{"interrupt", fmt.Errorf("wait: %w", context.Canceled), services.ExitCancelled},
		{"plain", errors.New("other"), services.ExitFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindLabels(t *testing.T) {
	if got := services.Kind(services.Wrap(services.ErrInstallFailure, "setup", "", "", nil)); got != "install_failure" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := services.Kind(context.Canceled); got != "cancelled" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := services.Kind(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}
