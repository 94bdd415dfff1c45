package app

import (
	"context"
	"errors"

	"phodata/internal/domain"
	appErrors "phodata/internal/errors"
)

type Extractor struct {
	Exif ExifReader
}

// Extract decodes one file. Missing tags become absent fields; only a file
// that cannot be opened or decoded at all is an error.
func (e Extractor) Extract(ctx context.Context, path string) (domain.PhotoRecord, error) {
	if e.Exif == nil {
		return domain.PhotoRecord{}, errors.New("extractor requires Exif")
	}
	tags, err := e.Exif.Tags(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.PhotoRecord{}, err
		}
		return domain.PhotoRecord{}, appErrors.Wrap(appErrors.DecodeFailure, "extract", path, err)
	}
	return domain.NewPhotoRecord(path, tags), nil
}
