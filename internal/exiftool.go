package internal

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/barasher/go-exiftool"
)

// ExifTool drives the external exiftool binary. It is the --exiftool
// alternative to the native APP1 encoder and goexif reader.
type ExifTool struct {
	et *exiftool.Exiftool
}

// NewExifTool starts a long-lived exiftool process
func NewExifTool() (*ExifTool, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExifTool{et: et}, nil
}

func (e *ExifTool) Close() error {
	return e.et.Close()
}

// ExifToolPrecisionNote explains the one way the exiftool writer differs from
// the native one.
const ExifToolPrecisionNote = "exiftool picks its own GPS seconds denominator; the per-set and exif.seconds_denominator precision applies to the native writer only"

// WriteTags writes the same tags as BuildExif into an existing JPEG. GPS
// positions go in as decimal degrees, so exiftool chooses the rationals.
func (e *ExifTool) WriteTags(path string, m Metadata) error {
	lat := ToDMS(m.Latitude, Latitude)
	lon := ToDMS(m.Longitude, Longitude)
	date := m.Taken.Format(ExifDateLayout)

	fm := exiftool.FileMetadata{File: path, Fields: map[string]interface{}{}}
	fm.SetString("GPSVersionID", "2.2.0.0")
	fm.SetString("GPSLatitudeRef", string(lat.Ref))
	fm.SetFloat("GPSLatitude", DecodeRationals(EncodeRationals(lat, m.SecondsDen)))
	fm.SetString("GPSLongitudeRef", string(lon.Ref))
	fm.SetFloat("GPSLongitude", DecodeRationals(EncodeRationals(lon, m.SecondsDen)))
	fm.SetString("DateTimeOriginal", date)
	if m.WriteDigitized {
		fm.SetString("CreateDate", date)
	}
	if m.WriteDateTime {
		fm.SetString("ModifyDate", date)
	}
	if m.Make != "" {
		fm.SetString("Make", m.Make)
	}
	if m.Model != "" {
		fm.SetString("Model", m.Model)
	}

	batch := []exiftool.FileMetadata{fm}
	e.et.WriteMetadata(batch)
	// exiftool keeps a backup unless told otherwise
	os.Remove(path + "_original")
	if batch[0].Err != nil {
		return fmt.Errorf("exiftool metadata write failed for %s: %w", path, batch[0].Err)
	}
	return nil
}

// ReadGeotags reads GPS, date and camera through exiftool. Errors for
// individual files are returned alongside the files that did decode.
func (e *ExifTool) ReadGeotags(paths ...string) ([]*Geotag, []error) {
	var tags []*Geotag
	var errs []error

	for _, fm := range e.et.ExtractMetadata(paths...) {
		if fm.Err != nil {
			errs = append(errs, fmt.Errorf("exiftool metadata read failed for %s: %w", fm.File, fm.Err))
			continue
		}
		g, err := geotagFromFields(fm)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tags = append(tags, g)
	}
	return tags, errs
}

func geotagFromFields(fm exiftool.FileMetadata) (*Geotag, error) {
	g := &Geotag{Path: fm.File}

	latStr, err := fm.GetString("GPSLatitude")
	if err != nil {
		return nil, fmt.Errorf("no gps latitude in metadata of %s: %w", fm.File, err)
	}
	lonStr, err := fm.GetString("GPSLongitude")
	if err != nil {
		return nil, fmt.Errorf("no gps longitude in metadata of %s: %w", fm.File, err)
	}
	if g.Latitude, err = ParseExifToolCoordinate(latStr); err != nil {
		return nil, fmt.Errorf("%s: %w", fm.File, err)
	}
	if g.Longitude, err = ParseExifToolCoordinate(lonStr); err != nil {
		return nil, fmt.Errorf("%s: %w", fm.File, err)
	}

	if date, err := fm.GetString("DateTimeOriginal"); err == nil {
		if tm, err := time.ParseInLocation(ExifDateLayout, date, time.Local); err == nil {
			g.Taken = tm
		}
	}
	g.Make, _ = fm.GetString("Make")
	g.Model, _ = fm.GetString("Model")

	return g, nil
}

var exifToolCoordRe = regexp.MustCompile(`^(\d+) deg (\d+)' ([\d.]+)" ?([NSEW])?$`)

// ParseExifToolCoordinate parses exiftool's default print form,
// e.g. `35 deg 39' 30.89" N`, into signed decimal degrees.
func ParseExifToolCoordinate(s string) (float64, error) {
	m := exifToolCoordRe.FindStringSubmatch(s)
	if m == nil {
		// exiftool -n prints plain decimals
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, nil
		}
		return 0, fmt.Errorf("unrecognised exiftool coordinate %q", s)
	}

	deg, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognised exiftool coordinate %q", s)
	}

	d := DMS{Degrees: deg, Minutes: minutes, Seconds: sec, Ref: 'N'}
	if m[4] != "" {
		d.Ref = m[4][0]
	}
	return d.Decimal(), nil
}
