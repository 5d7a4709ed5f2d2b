package internal

import (
	"fmt"
	"math"
)

// Axis tells ToDMS which pair of hemisphere letters to use
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// DMS is an angle split into degrees, minutes and seconds plus its hemisphere
type DMS struct {
	Degrees int
	Minutes int
	Seconds float64
	Ref     byte // 'N', 'S', 'E' or 'W'
}

// Rational is an EXIF RATIONAL: two unsigned 32-bit integers
type Rational struct {
	Num uint32
	Den uint32
}

// Float returns the value of the rational, 0 for a zero denominator
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// MaxSecondsDenominator keeps 60*den inside a uint32 numerator.
const MaxSecondsDenominator = 10_000_000

// ToDMS converts signed decimal degrees. Each component is truncated, never rounded.
func ToDMS(decimal float64, axis Axis) DMS {
	abs := math.Abs(decimal)

	degrees := int(abs)
	minutesFull := (abs - float64(degrees)) * 60
	minutes := int(minutesFull)
	seconds := (minutesFull - float64(minutes)) * 60

	return DMS{
		Degrees: degrees,
		Minutes: minutes,
		Seconds: seconds,
		Ref:     hemisphere(decimal >= 0, axis),
	}
}

func hemisphere(positive bool, axis Axis) byte {
	switch {
	case axis == Latitude && positive:
		return 'N'
	case axis == Latitude:
		return 'S'
	case positive:
		return 'E'
	default:
		return 'W'
	}
}

// Decimal recombines the components into signed decimal degrees
func (d DMS) Decimal() float64 {
	v := float64(d.Degrees) + float64(d.Minutes)/60 + d.Seconds/3600
	if d.Ref == 'S' || d.Ref == 'W' {
		return -v
	}
	return v
}

func (d DMS) String() string {
	return fmt.Sprintf("%d°%02d'%05.2f\"%c", d.Degrees, d.Minutes, d.Seconds, d.Ref)
}

// EncodeRationals turns a DMS triple into the three EXIF rationals used by the
// GPSLatitude/GPSLongitude tags. Degrees and minutes are whole numbers over 1;
// seconds are truncated to 1/secondsDen.
func EncodeRationals(d DMS, secondsDen uint32) [3]Rational {
	if secondsDen == 0 {
		secondsDen = 1
	}
	return [3]Rational{
		{Num: uint32(d.Degrees), Den: 1},
		{Num: uint32(d.Minutes), Den: 1},
		{Num: uint32(d.Seconds * float64(secondsDen)), Den: secondsDen},
	}
}

// DecodeRationals is the inverse of EncodeRationals, without the sign.
func DecodeRationals(r [3]Rational) float64 {
	return r[0].Float() + r[1].Float()/60 + r[2].Float()/3600
}
