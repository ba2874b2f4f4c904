package preflight

import (
	"context"
	"os"
	"strings"

	"ytpd/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks that must pass before a download starts.
// The destination is always checked; the tool directory only when set and present.
func RunAll(_ context.Context, destination, toolDir string) []Result {
	var results []Result

	results = append(results, CheckDirectoryAccess("Destination", destination))

	if strings.TrimSpace(toolDir) != "" && exists(toolDir) {
		results = append(results, CheckDirectoryAccess("Tool directory", toolDir))
	}

	return results
}

// Err converts failed results into an InvalidInput error naming each failure.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrInvalidInput, "preflight", "check", strings.Join(failed, "; "), nil)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
