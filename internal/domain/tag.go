package domain

import (
	"strconv"
	"strings"
)

// EXIF field names as reported by the decoder.
const (
	TagModel           = "Model"
	TagDateTime        = "DateTime"
	TagExposureTime    = "ExposureTime"
	TagFNumber         = "FNumber"
	TagISOSpeedRatings = "ISOSpeedRatings"
	TagFocalLength     = "FocalLength"
	TagGPSLatitude     = "GPSLatitude"
	TagGPSLatitudeRef  = "GPSLatitudeRef"
	TagGPSLongitude    = "GPSLongitude"
	TagGPSLongitudeRef = "GPSLongitudeRef"
)

type TagKind int

const (
	TagAbsent TagKind = iota
	TagText
	TagInt
	TagRational
	TagRationalList
)

// Rational is an unreduced EXIF numerator/denominator pair.
type Rational struct {
	Num int64
	Den int64
}

// Float converts the rational to a decimal. ok is false for a zero denominator.
func (r Rational) Float() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

// String renders the reduced fraction, or a whole number when the reduced
// denominator is 1.
func (r Rational) String() string {
	num, den := r.Num, r.Den
	if den == 0 {
		return strconv.FormatInt(num, 10) + "/0"
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num, den = num/g, den/g
	}
	if den == 1 {
		return strconv.FormatInt(num, 10)
	}
	return strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// TagValue is one decoded EXIF field. Exactly one of Text, Ints or Rats is
// meaningful, selected by Kind.
type TagValue struct {
	Kind TagKind
	Text string
	Ints []int64
	Rats []Rational
}

func TextTag(s string) TagValue { return TagValue{Kind: TagText, Text: s} }

func IntTag(v ...int64) TagValue {
	if len(v) == 0 {
		return TagValue{}
	}
	return TagValue{Kind: TagInt, Ints: v}
}

func RationalTag(r ...Rational) TagValue {
	switch len(r) {
	case 0:
		return TagValue{}
	case 1:
		return TagValue{Kind: TagRational, Rats: r}
	default:
		return TagValue{Kind: TagRationalList, Rats: r}
	}
}

func (v TagValue) Present() bool { return v.Kind != TagAbsent }

// String is the human-readable form of the value. Lists render as
// "[a, b, c]".
func (v TagValue) String() string {
	switch v.Kind {
	case TagText:
		return v.Text
	case TagInt:
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return joinList(parts)
	case TagRational, TagRationalList:
		parts := make([]string, len(v.Rats))
		for i, r := range v.Rats {
			parts[i] = r.String()
		}
		return joinList(parts)
	default:
		return ""
	}
}

func joinList(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tags maps EXIF field names to decoded values. Missing keys read as absent.
type Tags map[string]TagValue

func (t Tags) Get(name string) TagValue {
	if t == nil {
		return TagValue{}
	}
	return t[name]
}
