package app

import (
	"context"
	"io/fs"

	"phodata/internal/domain"
)

type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	// WalkFiles calls fn for every regular file below root, in walk order.
	// A non-nil error from fn stops the walk and is returned.
	WalkFiles(root string, fn func(path string) error) error
}

type ExifReader interface {
	Tags(ctx context.Context, path string) (domain.Tags, error)
}

// RecordSink receives records in discovery order. Commit finalises the
// destination; Abort discards everything written so far.
type RecordSink interface {
	Write(rec domain.PhotoRecord) error
	Commit() error
	Abort() error
	Destination() string
}

// SinkOpener creates the sink. The exporter calls it only once the root has
// been checked, so a bad root never touches the output location.
type SinkOpener func(ctx context.Context) (RecordSink, error)
