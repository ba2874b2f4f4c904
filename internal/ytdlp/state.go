package ytdlp

import (
	"fmt"
	"strings"

	"ytpd/internal/services"
)

// State tracks the download tool process lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "not_started"
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Result summarises a finished download.
type Result struct {
	State State
	// Files lists audio files reported by the extraction step, in order.
	Files []string
	// Items is the playlist size when yt-dlp reported one, else 1 on success.
	Items int
	// Errors holds the captured tail of error output.
	Errors []string
}

// ExitError reports a failed yt-dlp run. Lines holds the error output the
// tool printed, unmodified. It matches services.ErrExternalTool.
type ExitError struct {
	// Status is the child exit status, or -1 when it did not exit normally.
	Status int
	Lines  []string
	cause  error
}

// Summary describes the failure without the captured output.
func (e *ExitError) Summary() string {
	if e.Status >= 0 {
		return fmt.Sprintf("yt-dlp exited with status %d", e.Status)
	}
	return "yt-dlp failed"
}

func (e *ExitError) Error() string {
	if len(e.Lines) == 0 {
		return e.Summary()
	}
	return e.Summary() + ":\n" + strings.Join(e.Lines, "\n")
}

func (e *ExitError) Unwrap() []error {
	return []error{services.ErrExternalTool, e.cause}
}
