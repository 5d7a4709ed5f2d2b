package internal

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// ExifDateLayout is the EXIF DateTime format
const ExifDateLayout = "2006:01:02 15:04:05"

// Metadata is everything written into a generated photo
type Metadata struct {
	Latitude   float64
	Longitude  float64
	Taken      time.Time
	Make       string // optional
	Model      string // optional
	SecondsDen uint32

	// WriteDateTime adds IFD0 DateTime, WriteDigitized adds DateTimeDigitized
	WriteDateTime  bool
	WriteDigitized bool
}

// GPSPayload is the hemisphere ref plus the three rationals for one axis
type GPSPayload struct {
	Ref       byte
	Rationals [3]Rational
}

// LatitudePayload returns the encoded GPSLatitudeRef/GPSLatitude pair
func (m Metadata) LatitudePayload() GPSPayload {
	d := ToDMS(m.Latitude, Latitude)
	return GPSPayload{Ref: d.Ref, Rationals: EncodeRationals(d, m.SecondsDen)}
}

// LongitudePayload returns the encoded GPSLongitudeRef/GPSLongitude pair
func (m Metadata) LongitudePayload() GPSPayload {
	d := ToDMS(m.Longitude, Longitude)
	return GPSPayload{Ref: d.Ref, Rationals: EncodeRationals(d, m.SecondsDen)}
}

// exifIfdMapping and exifTagIndex are shared by every builder
var (
	exifIfdMapping *exifcommon.IfdMapping
	exifTagIndex   = exif.NewTagIndex()
)

func init() {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		panic(fmt.Sprintf("failed to load standard IFD mapping: %v", err))
	}
	exifIfdMapping = im
}

func exifRationals(rs [3]Rational) []exifcommon.Rational {
	out := make([]exifcommon.Rational, len(rs))
	for i, r := range rs {
		out[i] = exifcommon.Rational{Numerator: r.Num, Denominator: r.Den}
	}
	return out
}

type tagValue struct {
	name  string
	value interface{}
}

func setTags(ib *exif.IfdBuilder, tags []tagValue) error {
	for _, t := range tags {
		if err := ib.SetStandardWithName(t.name, t.value); err != nil {
			return fmt.Errorf("failed to set exif tag %s: %w", t.name, err)
		}
	}
	return nil
}

// newExifBuilder lays out IFD0, the Exif IFD and the GPS IFD for m
func newExifBuilder(m Metadata) (*exif.IfdBuilder, error) {
	date := m.Taken.Format(ExifDateLayout)
	root := exif.NewIfdBuilder(exifIfdMapping, exifTagIndex, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	var ifd0 []tagValue
	if m.Make != "" {
		ifd0 = append(ifd0, tagValue{"Make", m.Make})
	}
	if m.Model != "" {
		ifd0 = append(ifd0, tagValue{"Model", m.Model})
	}
	if m.WriteDateTime {
		ifd0 = append(ifd0, tagValue{"DateTime", date})
	}
	if err := setTags(root, ifd0); err != nil {
		return nil, err
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(root, "IFD/Exif")
	if err != nil {
		return nil, fmt.Errorf("failed to create exif IFD: %w", err)
	}
	exifTags := []tagValue{{"DateTimeOriginal", date}}
	if m.WriteDigitized {
		exifTags = append(exifTags, tagValue{"DateTimeDigitized", date})
	}
	if err := setTags(exifIb, exifTags); err != nil {
		return nil, err
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(root, "IFD/GPSInfo")
	if err != nil {
		return nil, fmt.Errorf("failed to create exif GPS IFD: %w", err)
	}
	lat := m.LatitudePayload()
	lon := m.LongitudePayload()
	err = setTags(gpsIb, []tagValue{
		{"GPSVersionID", []byte{2, 2, 0, 0}},
		{"GPSLatitudeRef", string(lat.Ref)},
		{"GPSLatitude", exifRationals(lat.Rationals)},
		{"GPSLongitudeRef", string(lon.Ref)},
		{"GPSLongitude", exifRationals(lon.Rationals)},
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// BuildExif returns the TIFF structure (without the "Exif\0\0" header)
func BuildExif(m Metadata) ([]byte, error) {
	ib, err := newExifBuilder(m)
	if err != nil {
		return nil, err
	}
	data, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	if err != nil {
		return nil, fmt.Errorf("failed to encode exif: %w", err)
	}
	return data, nil
}

var errNotJPEG = errors.New("unsupported format: data does not start with a JPEG SOI marker")

// EmbedExif sets the Exif APP1 segment of a JPEG stream, inserting it right
// after SOI when the stream has none.
func EmbedExif(jpegData []byte, m Metadata) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, errNotJPEG
	}

	ib, err := newExifBuilder(m)
	if err != nil {
		return nil, err
	}

	mc, err := jpegstructure.NewJpegMediaParser().ParseBytes(jpegData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JPEG segments: %w", err)
	}
	sl := mc.(*jpegstructure.SegmentList)

	if err := sl.SetExif(ib); err != nil {
		return nil, fmt.Errorf("failed to set exif segment: %w", err)
	}

	var out bytes.Buffer
	out.Grow(len(jpegData) + 512)
	if err := sl.Write(&out); err != nil {
		return nil, fmt.Errorf("failed to write JPEG with exif: %w", err)
	}
	return out.Bytes(), nil
}
