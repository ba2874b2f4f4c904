package request

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ytpd/internal/textutil"
)

// FS is the slice of filesystem behaviour destination resolution needs.
type FS interface {
	MkdirAll(path string, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FS against the real filesystem.
type OSFS struct{}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// ErrUnsafeSubfolder is returned for subfolder names that would leave the base directory.
var ErrUnsafeSubfolder = errors.New("subfolder must be a single name inside the base directory")

// ResolveDestination joins base and an optional subfolder name and ensures
// the resulting directory exists. An empty subfolder resolves to base itself.
func ResolveDestination(fsys FS, base, subfolder string) (string, error) {
	if fsys == nil {
		fsys = OSFS{}
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return "", errors.New("base directory is required")
	}
	base = filepath.Clean(base)

	target := base
	if strings.TrimSpace(subfolder) != "" {
		name, err := CleanSubfolder(subfolder)
		if err != nil {
			return "", err
		}
		target = filepath.Join(base, name)
	}

	info, err := fsys.Stat(target)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("destination %s exists and is not a directory", target)
		}
		return target, nil
	case errors.Is(err, fs.ErrNotExist):
		if err := fsys.MkdirAll(target, 0o755); err != nil {
			return "", fmt.Errorf("create destination %s: %w", target, err)
		}
		return target, nil
	default:
		return "", fmt.Errorf("inspect destination %s: %w", target, err)
	}
}

// CleanSubfolder returns the sanitized single-segment folder name, or
// ErrUnsafeSubfolder when name would escape the base directory.
func CleanSubfolder(name string) (string, error) {
	name = strings.TrimSpace(name)
	if filepath.IsAbs(name) || name == "." || name == ".." {
		return "", ErrUnsafeSubfolder
	}
	cleaned := textutil.SanitizeFileName(name)
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "", ErrUnsafeSubfolder
	}
	return cleaned, nil
}
