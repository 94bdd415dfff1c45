package exif

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"phodata/internal/domain"
)

// Reader decodes EXIF tags with goexif. No maker-note parsers are registered,
// so only the main, EXIF, GPS and interop directories are read.
type Reader struct{}

func (Reader) Tags(ctx context.Context, path string) (domain.Tags, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		// A readable image that simply carries no EXIF block yields no tags.
		if isImage(file) {
			return domain.Tags{}, nil
		}
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	w := &tagWalker{tags: domain.Tags{}}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk exif: %w", err)
	}
	return w.tags, nil
}

func isImage(file *os.File) bool {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false
	}
	_, _, err := image.DecodeConfig(file)
	return err == nil
}

type tagWalker struct {
	tags domain.Tags
}

func (w *tagWalker) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	if v := tagValue(tag); v.Present() {
		w.tags[string(name)] = v
	}
	return nil
}

func tagValue(tag *tiff.Tag) domain.TagValue {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return domain.TagValue{}
		}
		return domain.TextTag(s)
	case tiff.IntVal:
		ints := make([]int64, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Int64(i)
			if err != nil {
				break
			}
			ints = append(ints, v)
		}
		return domain.IntTag(ints...)
	case tiff.RatVal:
		rats := make([]domain.Rational, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				break
			}
			rats = append(rats, domain.Rational{Num: num, Den: den})
		}
		return domain.RationalTag(rats...)
	default:
		return domain.TextTag(tag.String())
	}
}
