package exif

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	goexif "github.com/rwcarlsen/goexif/exif"

	"phodata/internal/domain"
	"phodata/internal/testutil"
)

func TestFieldNamesMatchDomainTags(t *testing.T) {
	pairs := map[goexif.FieldName]string{
		goexif.Model:           domain.TagModel,
		goexif.DateTime:        domain.TagDateTime,
		goexif.ExposureTime:    domain.TagExposureTime,
		goexif.FNumber:         domain.TagFNumber,
		goexif.ISOSpeedRatings: domain.TagISOSpeedRatings,
		goexif.FocalLength:     domain.TagFocalLength,
		goexif.GPSLatitude:     domain.TagGPSLatitude,
		goexif.GPSLatitudeRef:  domain.TagGPSLatitudeRef,
		goexif.GPSLongitude:    domain.TagGPSLongitude,
		goexif.GPSLongitudeRef: domain.TagGPSLongitudeRef,
	}
	for field, tag := range pairs {
		if string(field) != tag {
			t.Fatalf("field %s does not match domain tag %s", field, tag)
		}
	}
}

func TestTagsFromJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.jpg")
	testutil.WriteFile(t, path, testutil.FullPhoto().JPEG())

	tags, err := Reader{}.Tags(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tags.Get(domain.TagModel); got.Kind != domain.TagText || got.Text != "Canon EOS 5D Mark IV" {
		t.Fatalf("unexpected model: %+v", got)
	}
	if got := tags.Get(domain.TagDateTime).String(); got != "2019:07:04 12:30:00" {
		t.Fatalf("unexpected date time: %q", got)
	}
	if got := tags.Get(domain.TagExposureTime); got.Kind != domain.TagRational || got.String() != "1/400" {
		t.Fatalf("unexpected exposure: %+v", got)
	}
	if got := tags.Get(domain.TagISOSpeedRatings); got.Kind != domain.TagInt || got.Ints[0] != 200 {
		t.Fatalf("unexpected iso: %+v", got)
	}
	lat := tags.Get(domain.TagGPSLatitude)
	if lat.Kind != domain.TagRationalList || len(lat.Rats) != 3 || lat.Rats[1] != (domain.Rational{Num: 26, Den: 1}) {
		t.Fatalf("unexpected latitude: %+v", lat)
	}
	if got := tags.Get(domain.TagGPSLatitudeRef).String(); got != "S" {
		t.Fatalf("unexpected latitude ref: %q", got)
	}

	rec := domain.NewPhotoRecord(path, tags)
	if rec.Aperture == nil || *rec.Aperture != 2.8 {
		t.Fatalf("unexpected aperture: %v", rec.Aperture)
	}
	if rec.Latitude == nil || *rec.Latitude > -40.44 || *rec.Latitude < -40.45 {
		t.Fatalf("unexpected latitude: %v", rec.Latitude)
	}
}

func TestTagsFromRawTIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.tif")
	testutil.WriteFile(t, path, testutil.CameraOnlyPhoto().TIFF())

	tags, err := Reader{}.Tags(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tags.Get(domain.TagModel).String(); got != "X100V" {
		t.Fatalf("unexpected model: %q", got)
	}
	if tags.Get(domain.TagGPSLatitude).Present() {
		t.Fatalf("expected no GPS tags")
	}
}

func TestTagsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	testutil.WriteFile(t, path, []byte("this is not an image at all"))

	if _, err := (Reader{}).Tags(context.Background(), path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTagsImageWithoutExif(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "plain.png")
	testutil.WriteFile(t, path, buf.Bytes())

	tags, err := Reader{}.Tags(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestTagsMissingFile(t *testing.T) {
	if _, err := (Reader{}).Tags(context.Background(), filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestTagsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Reader{}).Tags(ctx, "/does/not/matter.jpg"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
