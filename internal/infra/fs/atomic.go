package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempSibling creates the parent directory of dest and returns a unique
// hidden path next to it, so the final rename stays on one filesystem.
func TempSibling(dest string) (string, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.NewString())), nil
}

// Promote moves tmp over dest, replacing any existing file.
func Promote(tmp, dest string) error {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", dest)
	}
	return os.Rename(tmp, dest)
}

// Discard removes path and any of the given sidecar suffixes. Missing files
// are not an error.
func Discard(path string, sidecars ...string) error {
	var errs []error
	for _, p := range append([]string{path}, sidecarPaths(path, sidecars)...) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func sidecarPaths(path string, suffixes []string) []string {
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = path + s
	}
	return out
}
