package internal

import (
	"context"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerator_Generate(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "routy_test_photos")
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	job := PlanTokyo(now, nil)[0]

	g := &Generator{
		OutputDir:  outDir,
		SecondsDen: 10000,
		Typeface:   LoadTypeface(nil, NopLogger()),
		Log:        NopLogger(),
	}

	photo, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if photo.Path != filepath.Join(outDir, "01_restaurant.jpg") {
		t.Errorf("Unexpected path %s", photo.Path)
	}
	if _, err := os.Stat(photo.Path + ".tmp"); err == nil {
		t.Error("Temporary file left behind")
	}
	if len(photo.Hash) != 64 || photo.Size == 0 {
		t.Errorf("Unexpected hash/size %q/%d", photo.Hash, photo.Size)
	}

	f, err := os.Open(photo.Path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := jpeg.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatalf("Generated file is not a JPEG: %v", err)
	}
	if cfg.Width != 1600 || cfg.Height != 1200 {
		t.Errorf("Unexpected dimensions %dx%d", cfg.Width, cfg.Height)
	}

	tag, err := ReadGeotag(photo.Path)
	if err != nil {
		t.Fatalf("ReadGeotag failed: %v", err)
	}
	// 35.6585805 → 35°39′30.89″
	if tag.LatitudeRationals[0] != (Rational{35, 1}) || tag.LatitudeRationals[1] != (Rational{39, 1}) {
		t.Errorf("Unexpected latitude rationals %v", tag.LatitudeRationals)
	}
	if math.Abs(tag.Latitude-35.65858) > 1e-5 {
		t.Errorf("Latitude = %f; want ≈35.65858", tag.Latitude)
	}
	if got := tag.Taken.Format(ExifDateLayout); got != "2026:10:16 09:30:00" {
		t.Errorf("Taken = %s", got)
	}
}

func TestGenerator_KansaiCamera(t *testing.T) {
	jobs := PlanKansai(time.Date(2026, 10, 16, 20, 0, 0, 0, time.Local), NewRand(3))
	g := &Generator{OutputDir: t.TempDir(), SecondsDen: 1000000, Log: NopLogger()}

	photo, err := g.Generate(context.Background(), jobs[0])
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tag, err := ReadGeotag(photo.Path)
	if err != nil {
		t.Fatalf("ReadGeotag failed: %v", err)
	}
	if tag.Make != "Apple" || tag.Model != "iPhone 15 Pro" {
		t.Errorf("Unexpected camera %q/%q", tag.Make, tag.Model)
	}
	if tag.LatitudeRationals[2].Den != 1000000 {
		t.Errorf("Expected seconds denominator 1000000, got %d", tag.LatitudeRationals[2].Den)
	}
}

func TestGenerator_InvalidSize(t *testing.T) {
	g := &Generator{OutputDir: t.TempDir()}
	if _, err := g.Generate(context.Background(), PhotoJob{Filename: "x.jpg"}); err == nil {
		t.Error("Expected error for zero-sized job")
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &Generator{OutputDir: t.TempDir()}
	job := PlanTokyo(time.Now(), nil)[0]
	if _, err := g.Generate(ctx, job); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

type recordingTagWriter struct {
	paths []string
}

func (r *recordingTagWriter) WriteTags(path string, _ Metadata) error {
	r.paths = append(r.paths, path)
	return nil
}

func TestGenerator_ExternalTagWriter(t *testing.T) {
	rec := &recordingTagWriter{}
	g := &Generator{OutputDir: t.TempDir(), TagWriter: rec, Log: NopLogger()}
	job := PlanTokyo(time.Now(), nil)[1]
	job.Labels = nil

	photo, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(rec.paths) != 1 || rec.paths[0] != photo.Path {
		t.Errorf("Tag writer not called for %s: %v", photo.Path, rec.paths)
	}
	// nothing embedded natively
	if _, err := ReadGeotag(photo.Path); err == nil {
		t.Error("Expected no native EXIF when an external writer is set")
	}
}
