package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Geotag is the subset of EXIF a fixture is checked against
type Geotag struct {
	Path      string
	Latitude  float64
	Longitude float64
	Taken     time.Time
	Make      string
	Model     string

	// Raw GPSLatitude/GPSLongitude rationals, only filled by ReadGeotag
	LatitudeRationals  [3]Rational
	LongitudeRationals [3]Rational
}

// ReadGeotag decodes GPS position, capture time and camera from a JPEG
func ReadGeotag(path string) (*Geotag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exif in %s: %w", path, err)
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return nil, fmt.Errorf("no gps position in exif of %s: %w", path, err)
	}

	g := &Geotag{Path: path, Latitude: lat, Longitude: lon}

	if g.LatitudeRationals, err = tagRationals(x, exif.GPSLatitude); err != nil {
		return nil, err
	}
	if g.LongitudeRationals, err = tagRationals(x, exif.GPSLongitude); err != nil {
		return nil, err
	}

	// a missing date or camera is not an error for inspection
	if tm, err := x.DateTime(); err == nil {
		g.Taken = tm
	}
	g.Make = tagString(x, exif.Make)
	g.Model = tagString(x, exif.Model)

	return g, nil
}

func tagRationals(x *exif.Exif, name exif.FieldName) ([3]Rational, error) {
	var out [3]Rational
	tag, err := x.Get(name)
	if err != nil {
		return out, err
	}
	for i := range out {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return out, fmt.Errorf("bad %s rational %d: %w", name, i, err)
		}
		out[i] = Rational{Num: uint32(num), Den: uint32(den)}
	}
	return out, nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}
