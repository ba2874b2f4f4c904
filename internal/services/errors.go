package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrInstallFailure    = errors.New("install failed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrExternalTool      = errors.New("external tool error")
	ErrCancelled         = errors.New("cancelled")
)

const (
	// ExitFailure is returned for every failure other than cancellation.
	ExitFailure = 1
	// ExitCancelled follows the shell convention for SIGINT.
	ExitCancelled = 130
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsCancelled reports whether err stems from the operator aborting the run,
// either through a prompt or an interrupt signal.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// ExitCode maps an error returned by the workflow to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsCancelled(err):
		return ExitCancelled
	default:
		return ExitFailure
	}
}

// Kind returns a short label for the error's marker, used in log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsCancelled(err):
		return "cancelled"
	case errors.Is(err, ErrMissingDependency):
		return "missing_dependency"
	case errors.Is(err, ErrInstallFailure):
		return "install_failure"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrExternalTool):
		return "external_tool_failure"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
