package deps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Requirement defines an external dependency ytpd relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// SearchDirs are consulted after PATH, e.g. the tool directory ytpd installs into.
	SearchDirs []string
	// VerifyArgs, when set, are passed to the resolved binary; a non-zero
	// exit marks the dependency unavailable.
	VerifyArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// LookPathFunc resolves an executable name to a path.
type LookPathFunc func(file string) (string, error)

// VerifyFunc runs a resolved binary with arguments and reports failure.
type VerifyFunc func(ctx context.Context, binary string, args ...string) error

// Prober evaluates requirements. Zero-value fields fall back to exec.LookPath
// and running the binary with exec.CommandContext.
type Prober struct {
	LookPath LookPathFunc
	Verify   VerifyFunc
}

// CheckBinaries evaluates the provided requirements using the host PATH.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	return Prober{}.Check(ctx, requirements)
}

// Check evaluates the provided requirements and reports availability.
func (p Prober) Check(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, p.checkOne(ctx, req))
	}
	return results
}

func (p Prober) checkOne(ctx context.Context, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, ok := p.resolve(cmd, req.SearchDirs)
	if !ok {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Path = resolved
	if len(req.VerifyArgs) > 0 {
		if err := p.verify()(ctx, resolved, req.VerifyArgs...); err != nil {
			status.Detail = fmt.Sprintf("broken installation: %q %s failed: %v", cmd, strings.Join(req.VerifyArgs, " "), err)
			return status
		}
	}
	status.Available = true
	return status
}

// Find resolves cmd on PATH only.
func (p Prober) Find(cmd string) (string, bool) {
	return p.resolve(strings.TrimSpace(cmd), nil)
}

func (p Prober) resolve(cmd string, searchDirs []string) (string, bool) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath(cmd); err == nil {
		return path, true
	}
	// Explicit paths are not retried against the search directories.
	if strings.ContainsAny(cmd, `/\`) {
		return "", false
	}
	for _, dir := range searchDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		candidate := filepath.Join(dir, ExecutableName(cmd))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate, true
		}
	}
	return "", false
}

func (p Prober) verify() VerifyFunc {
	if p.Verify != nil {
		return p.Verify
	}
	return runQuiet
}

func runQuiet(ctx context.Context, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if line := firstLine(string(output)); line != "" {
			return fmt.Errorf("%w (%s)", err, line)
		}
		return err
	}
	return nil
}

// Missing returns the statuses of required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}

// ExecutableName appends the platform executable suffix to base.
func ExecutableName(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
