package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrEmptySource is returned by WriteAtomic when r yields no bytes.
var ErrEmptySource = errors.New("empty source")

// WriteAtomic streams r into a temp file next to dst, applies mode, and
// renames it over dst. dst is never left partially written, and an empty
// source leaves any existing dst untouched.
func WriteAtomic(dst string, r io.Reader, mode os.FileMode) (int64, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		return written, fmt.Errorf("write temp file: %w", err)
	}
	if written == 0 {
		return 0, ErrEmptySource
	}
	if err := tmp.Sync(); err != nil {
		return written, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return written, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return written, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return written, fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return written, nil
}
