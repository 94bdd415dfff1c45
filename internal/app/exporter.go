package app

import (
	"context"
	"errors"
	"time"

	"phodata/internal/domain"
	appErrors "phodata/internal/errors"
	"phodata/internal/logging"
)

// ProgressFunc is called after each discovered file has been handled.
type ProgressFunc func(done int, path string)

type Exporter struct {
	FS         FileSystem
	Exif       ExifReader
	Logger     logging.Logger
	Policy     domain.ErrorPolicy
	OnProgress ProgressFunc
}

// Export runs discover, extract and write as one sequential pass. The sink is
// opened after the root checks pass. On any later error it is aborted and
// nothing is finalised.
func (e *Exporter) Export(ctx context.Context, root string, exts domain.ExtensionSet, open SinkOpener) (summary domain.ExportSummary, err error) {
	if e.FS == nil || e.Exif == nil || open == nil {
		return summary, errors.New("exporter requires FS, Exif and a sink opener")
	}

	start := time.Now()
	stop := e.Logger.Measure("Exporting")
	defer stop()

	discoverer := Discoverer{FS: e.FS, Logger: e.Logger}
	paths, err := discoverer.Discover(ctx, root, exts)
	if err != nil {
		return summary, err
	}

	sink, err := open(ctx)
	if err != nil {
		return summary, err
	}
	summary.Destination = sink.Destination()

	defer func() {
		if err == nil {
			return
		}
		if abortErr := sink.Abort(); abortErr != nil {
			e.Logger.Warnf("discarding partial output failed: %v", abortErr)
		}
	}()

	extractor := Extractor{Exif: e.Exif}

	handled := 0
	for path, walkErr := range paths {
		if walkErr != nil {
			return summary, walkErr
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rec, exErr := extractor.Extract(ctx, path)
		if exErr != nil {
			if e.Policy != domain.PolicySkip || appErrors.KindOf(exErr) != appErrors.DecodeFailure {
				return summary, exErr
			}
			reason := errors.Unwrap(exErr).Error()
			e.Logger.Skipf(path, reason)
			summary.Skipped = append(summary.Skipped, domain.SkippedFile{Path: path, Reason: reason})
		} else {
			if err := sink.Write(rec); err != nil {
				return summary, appErrors.Wrap(appErrors.IOFailure, "write", path, err)
			}
			summary.Written++
			if rec.Latitude != nil {
				summary.WithGPS++
			}
			e.Logger.Verbosef("Wrote %s", path)
		}

		handled++
		if e.OnProgress != nil {
			e.OnProgress(handled, path)
		}
	}

	if err := sink.Commit(); err != nil {
		return summary, appErrors.Wrap(appErrors.IOFailure, "commit", "", err)
	}

	summary.Elapsed = time.Since(start)
	e.Logger.Verbosef("Exported %d records (%d with GPS, %d skipped)", summary.Written, summary.WithGPS, len(summary.Skipped))
	return summary, nil
}
