package domain

import (
	"strconv"
	"strings"
)

type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnReal
	ColumnInteger
)

type Column struct {
	Name string
	Type ColumnType
}

// Columns is the fixed output schema, in row order.
var Columns = []Column{
	{Name: "File path", Type: ColumnText},
	{Name: "Camera", Type: ColumnText},
	{Name: "Time taken", Type: ColumnText},
	{Name: "Latitude", Type: ColumnReal},
	{Name: "Longitude", Type: ColumnReal},
	{Name: "Exposure time", Type: ColumnText},
	{Name: "Aperture", Type: ColumnReal},
	{Name: "ISO", Type: ColumnInteger},
	{Name: "Focal length", Type: ColumnReal},
}

func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}

// PhotoRecord is one output row. Nil fields are absent.
type PhotoRecord struct {
	Path         string
	Camera       *string
	TimeTaken    *string
	Latitude     *float64
	Longitude    *float64
	ExposureTime *string
	Aperture     *float64
	ISO          *int64
	FocalLength  *float64
}

// Values returns the fields in column order, with untyped nil for absent
// values so database drivers store NULL.
func (r PhotoRecord) Values() []any {
	return []any{
		r.Path,
		optional(r.Camera),
		optional(r.TimeTaken),
		optional(r.Latitude),
		optional(r.Longitude),
		optional(r.ExposureTime),
		optional(r.Aperture),
		optional(r.ISO),
		optional(r.FocalLength),
	}
}

// Strings returns the fields in column order as text cells. Absent values
// are empty.
func (r PhotoRecord) Strings() []string {
	return []string{
		r.Path,
		textCell(r.Camera),
		textCell(r.TimeTaken),
		floatCell(r.Latitude),
		floatCell(r.Longitude),
		textCell(r.ExposureTime),
		floatCell(r.Aperture),
		intCell(r.ISO),
		floatCell(r.FocalLength),
	}
}

func optional[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func textCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}

func intCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// FormatFloat renders the shortest decimal that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewPhotoRecord derives a record from decoded tags. Missing or malformed
// tags yield absent fields, never an error.
func NewPhotoRecord(path string, tags Tags) PhotoRecord {
	rec := PhotoRecord{
		Path:         path,
		Camera:       textField(tags.Get(TagModel)),
		TimeTaken:    textField(tags.Get(TagDateTime)),
		ExposureTime: textField(tags.Get(TagExposureTime)),
		Aperture:     decimalField(tags.Get(TagFNumber)),
		ISO:          intField(tags.Get(TagISOSpeedRatings)),
		FocalLength:  decimalField(tags.Get(TagFocalLength)),
	}
	if lat, lon, ok := Coordinates(tags); ok {
		rec.Latitude = &lat
		rec.Longitude = &lon
	}
	return rec
}

func textField(v TagValue) *string {
	if !v.Present() {
		return nil
	}
	s := v.String()
	return &s
}

func intField(v TagValue) *int64 {
	switch v.Kind {
	case TagInt:
		n := v.Ints[0]
		return &n
	default:
		return nil
	}
}

func decimalField(v TagValue) *float64 {
	switch v.Kind {
	case TagRational, TagRationalList:
		f, ok := v.Rats[0].Float()
		if !ok {
			return nil
		}
		return &f
	case TagInt:
		f := float64(v.Ints[0])
		return &f
	default:
		return nil
	}
}

// Coordinates derives decimal latitude and longitude. Both are returned or
// neither: all four GPS tags must be present and well formed.
func Coordinates(tags Tags) (lat, lon float64, ok bool) {
	latTag := tags.Get(TagGPSLatitude)
	lonTag := tags.Get(TagGPSLongitude)
	latRef := tags.Get(TagGPSLatitudeRef)
	lonRef := tags.Get(TagGPSLongitudeRef)
	if !latTag.Present() || !lonTag.Present() || !latRef.Present() || !lonRef.Present() {
		return 0, 0, false
	}

	lat, ok = sexagesimal(latTag)
	if !ok {
		return 0, 0, false
	}
	lon, ok = sexagesimal(lonTag)
	if !ok {
		return 0, 0, false
	}

	if strings.EqualFold(strings.TrimSpace(latRef.String()), "s") {
		lat = -lat
	}
	if strings.EqualFold(strings.TrimSpace(lonRef.String()), "w") {
		lon = -lon
	}
	return lat, lon, true
}

func sexagesimal(v TagValue) (float64, bool) {
	if v.Kind != TagRationalList || len(v.Rats) < 3 {
		return 0, false
	}
	var parts [3]float64
	for i := range parts {
		f, ok := v.Rats[i].Float()
		if !ok {
			return 0, false
		}
		parts[i] = f
	}
	return SexagesimalToDecimal(parts[0], parts[1], parts[2]), true
}

func SexagesimalToDecimal(degrees, minutes, seconds float64) float64 {
	return degrees + minutes/60 + seconds/3600
}
