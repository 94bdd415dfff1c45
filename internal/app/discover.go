package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"phodata/internal/domain"
	appErrors "phodata/internal/errors"
	"phodata/internal/logging"
)

var errStopWalk = errors.New("walk stopped by consumer")

type Discoverer struct {
	FS     FileSystem
	Logger logging.Logger
}

// Discover checks root and returns a single-use sequence of absolute paths of
// regular files whose extension is in exts. Paths come in walk order and are
// produced while the walk runs; breaking out of the range loop stops the walk.
// A walk failure is yielded as the final element with an empty path.
func (d Discoverer) Discover(ctx context.Context, root string, exts domain.ExtensionSet) (iter.Seq2[string, error], error) {
	if d.FS == nil {
		return nil, errors.New("discoverer requires FS")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.InvalidConfig, "resolve", root, err)
	}
	info, err := d.FS.Stat(absRoot)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, appErrors.Wrap(appErrors.NotFound, "stat", absRoot, err)
	}
	if !info.IsDir() {
		return nil, appErrors.Wrap(appErrors.InvalidConfig, "stat", absRoot, fmt.Errorf("not a directory"))
	}

	return func(yield func(string, error) bool) {
		stopped := false
		walkErr := d.FS.WalkFiles(absRoot, func(path string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !exts.Matches(path) {
				d.Logger.Verbosef("Ignoring %s", path)
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return errStopWalk
			}
			return nil
		})
		if walkErr == nil || stopped {
			return
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			yield("", walkErr)
			return
		}
		yield("", appErrors.Wrap(appErrors.IOFailure, "walk", absRoot, walkErr))
	}, nil
}

// Count drains a fresh discovery and returns the number of matching files.
func (d Discoverer) Count(ctx context.Context, root string, exts domain.ExtensionSet) (int, error) {
	paths, err := d.Discover(ctx, root, exts)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, err := range paths {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
