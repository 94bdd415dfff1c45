// Package testutil builds minimal EXIF payloads for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TIFF tag ids used by the fixtures.
const (
	TagModel           uint16 = 0x0110
	TagDateTime        uint16 = 0x0132
	TagExifIFD         uint16 = 0x8769
	TagGPSIFD          uint16 = 0x8825
	TagExposureTime    uint16 = 0x829A
	TagFNumber         uint16 = 0x829D
	TagISOSpeedRatings uint16 = 0x8827
	TagFocalLength     uint16 = 0x920A
	TagGPSLatitudeRef  uint16 = 0x0001
	TagGPSLatitude     uint16 = 0x0002
	TagGPSLongitudeRef uint16 = 0x0003
	TagGPSLongitude    uint16 = 0x0004
)

const (
	typeASCII    uint16 = 2
	typeShort    uint16 = 3
	typeLong     uint16 = 4
	typeRational uint16 = 5
)

var order = binary.LittleEndian

type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

func ASCII(tag uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: tag, Type: typeASCII, Count: uint32(len(data)), Data: data}
}

func Short(tag uint16, v uint16) Entry {
	data := make([]byte, 2)
	order.PutUint16(data, v)
	return Entry{Tag: tag, Type: typeShort, Count: 1, Data: data}
}

func Long(tag uint16, v uint32) Entry {
	data := make([]byte, 4)
	order.PutUint32(data, v)
	return Entry{Tag: tag, Type: typeLong, Count: 1, Data: data}
}

// Rational encodes one or more num/den pairs.
func Rational(tag uint16, pairs ...[2]uint32) Entry {
	data := make([]byte, 8*len(pairs))
	for i, p := range pairs {
		order.PutUint32(data[8*i:], p[0])
		order.PutUint32(data[8*i+4:], p[1])
	}
	return Entry{Tag: tag, Type: typeRational, Count: uint32(len(pairs)), Data: data}
}

// Photo describes the three directories of an EXIF block.
type Photo struct {
	IFD0 []Entry
	Exif []Entry
	GPS  []Entry
}

func dirSize(n int) uint32 {
	return uint32(2 + 12*n + 4)
}

// TIFF returns a little-endian TIFF stream: header, IFD0, EXIF IFD, GPS IFD,
// then the out-of-line value area.
func (p Photo) TIFF() []byte {
	ifd0 := append([]Entry(nil), p.IFD0...)
	if len(p.Exif) > 0 {
		ifd0 = append(ifd0, Long(TagExifIFD, 0))
	}
	if len(p.GPS) > 0 {
		ifd0 = append(ifd0, Long(TagGPSIFD, 0))
	}

	ifd0Off := uint32(8)
	exifOff := ifd0Off + dirSize(len(ifd0))
	gpsOff := exifOff
	if len(p.Exif) > 0 {
		gpsOff += dirSize(len(p.Exif))
	}
	dataOff := gpsOff
	if len(p.GPS) > 0 {
		dataOff += dirSize(len(p.GPS))
	}

	for i := range ifd0 {
		switch ifd0[i].Tag {
		case TagExifIFD:
			ifd0[i] = Long(TagExifIFD, exifOff)
		case TagGPSIFD:
			ifd0[i] = Long(TagGPSIFD, gpsOff)
		}
	}

	var out, data bytes.Buffer
	out.WriteString("II")
	binary.Write(&out, order, uint16(42))
	binary.Write(&out, order, ifd0Off)

	writeDir := func(entries []Entry) {
		sorted := append([]Entry(nil), entries...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })
		binary.Write(&out, order, uint16(len(sorted)))
		for _, e := range sorted {
			binary.Write(&out, order, e.Tag)
			binary.Write(&out, order, e.Type)
			binary.Write(&out, order, e.Count)
			if len(e.Data) <= 4 {
				var inline [4]byte
				copy(inline[:], e.Data)
				out.Write(inline[:])
				continue
			}
			binary.Write(&out, order, dataOff+uint32(data.Len()))
			data.Write(e.Data)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		binary.Write(&out, order, uint32(0))
	}

	writeDir(ifd0)
	if len(p.Exif) > 0 {
		writeDir(p.Exif)
	}
	if len(p.GPS) > 0 {
		writeDir(p.GPS)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

// JPEG wraps the TIFF stream in an APP1 Exif segment between SOI and EOI.
func (p Photo) JPEG() []byte {
	payload := append([]byte("Exif\x00\x00"), p.TIFF()...)
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

// FullPhoto carries camera, time, exposure and a south-western GPS fix.
func FullPhoto() Photo {
	return Photo{
		IFD0: []Entry{
			ASCII(TagModel, "Canon EOS 5D Mark IV"),
			ASCII(TagDateTime, "2019:07:04 12:30:00"),
		},
		Exif: []Entry{
			Rational(TagExposureTime, [2]uint32{1, 400}),
			Rational(TagFNumber, [2]uint32{28, 10}),
			Short(TagISOSpeedRatings, 200),
			Rational(TagFocalLength, [2]uint32{50, 1}),
		},
		GPS: []Entry{
			ASCII(TagGPSLatitudeRef, "S"),
			Rational(TagGPSLatitude, [2]uint32{40, 1}, [2]uint32{26, 1}, [2]uint32{46, 1}),
			ASCII(TagGPSLongitudeRef, "W"),
			Rational(TagGPSLongitude, [2]uint32{79, 1}, [2]uint32{58, 1}, [2]uint32{56, 1}),
		},
	}
}

// CameraOnlyPhoto carries nothing but the camera model.
func CameraOnlyPhoto() Photo {
	return Photo{IFD0: []Entry{ASCII(TagModel, "X100V")}}
}

func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for fixture %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
