package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"phodata/internal/domain"
	"phodata/internal/infra/fs"
)

// Writer streams records into a hidden temporary file and moves it over the
// destination on Commit.
type Writer struct {
	dest string
	tmp  string
	file *os.File
	csv  *csv.Writer
	done bool
}

func Create(dest string) (*Writer, error) {
	tmp, err := fs.TempSibling(dest)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", dest, err)
	}
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	w := &Writer{dest: dest, tmp: tmp, file: file, csv: csv.NewWriter(file)}
	w.csv.UseCRLF = true
	if err := w.csv.Write(domain.ColumnNames()); err != nil {
		return nil, errors.Join(fmt.Errorf("write header: %w", err), w.Abort())
	}
	return w, nil
}

func (w *Writer) Destination() string { return w.dest }

func (w *Writer) Write(rec domain.PhotoRecord) error {
	if w.done {
		return errors.New("csv writer already closed")
	}
	return w.csv.Write(rec.Strings())
}

func (w *Writer) Commit() error {
	if w.done {
		return errors.New("csv writer already closed")
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	w.done = true
	if err := fs.Promote(w.tmp, w.dest); err != nil {
		return errors.Join(fmt.Errorf("rename to %s: %w", w.dest, err), fs.Discard(w.tmp))
	}
	return nil
}

func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	var closeErr error
	if err := w.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		closeErr = fmt.Errorf("close: %w", err)
	}
	return errors.Join(closeErr, fs.Discard(w.tmp))
}
