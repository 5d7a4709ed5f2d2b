package internal

import (
	"math"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestParseExifToolCoordinate(t *testing.T) {
	testCases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`35 deg 39' 30.89" N`, 35 + 39.0/60 + 30.89/3600, false},
		{`139 deg 44' 43.56" E`, 139 + 44.0/60 + 43.56/3600, false},
		{`22 deg 52' 24.48" S`, -(22 + 52.0/60 + 24.48/3600), false},
		{`43 deg 10' 22.44" W`, -(43 + 10.0/60 + 22.44/3600), false},
		{`35 deg 39' 30.89"`, 35 + 39.0/60 + 30.89/3600, false},
		{"35.6585805", 35.6585805, false},
		{"-43.1729", -43.1729, false},
		{"north-ish", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseExifToolCoordinate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExifToolCoordinate failed: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("ParseExifToolCoordinate(%q) = %.9f; want %.9f", tc.in, got, tc.want)
			}
		})
	}
}

func TestExifTool_WriteAndRead(t *testing.T) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		t.Skip("exiftool not installed")
	}

	et, err := NewExifTool()
	if err != nil {
		t.Fatalf("NewExifTool failed: %v", err)
	}
	defer et.Close()

	job := PlanTokyo(time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local), nil)[0]
	job.Labels = nil
	g := &Generator{OutputDir: t.TempDir(), SecondsDen: 10000, TagWriter: et, Log: NopLogger()}

	photo, err := g.Generate(t.Context(), job)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(photo.Path + "_original"); err == nil {
		t.Error("exiftool backup file was left behind")
	}

	tags, errs := et.ReadGeotags(photo.Path)
	if len(errs) > 0 {
		t.Fatalf("ReadGeotags failed: %v", errs)
	}
	if len(tags) != 1 {
		t.Fatalf("Expected 1 geotag, got %d", len(tags))
	}
	if math.Abs(tags[0].Latitude-job.Location.Latitude) > 1e-4 {
		t.Errorf("Latitude = %f; want %f", tags[0].Latitude, job.Location.Latitude)
	}

	// goexif sees the same tags exiftool wrote
	native, err := ReadGeotag(photo.Path)
	if err != nil {
		t.Fatalf("ReadGeotag failed: %v", err)
	}
	if math.Abs(native.Longitude-job.Location.Longitude) > 1e-4 {
		t.Errorf("Longitude = %f; want %f", native.Longitude, job.Location.Longitude)
	}
}
