package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanPhotos(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"02_cafe.jpg", "01_restaurant.JPG", "03_park.jpeg", "notes.txt", ".hidden.jpg", "04_x.jpg.tmp", "manifest.jsonl"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanPhotos(dir)
	if err != nil {
		t.Fatalf("ScanPhotos failed: %v", err)
	}

	want := []string{"01_restaurant.JPG", "02_cafe.jpg", "03_park.jpeg"}
	if len(files) != len(want) {
		t.Fatalf("Expected %d files, got %v", len(want), files)
	}
	for i, w := range want {
		if files[i] != filepath.Join(dir, w) {
			t.Errorf("file %d = %s; want %s", i, files[i], w)
		}
	}
}

func TestScanPhotos_MissingDir(t *testing.T) {
	if _, err := ScanPhotos(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestIsPhotoFile(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.png", false},
		{"a.jpg.tmp", false},
		{"jpg", false},
	}
	for _, tc := range testCases {
		if got := isPhotoFile(tc.path); got != tc.want {
			t.Errorf("isPhotoFile(%q) = %v; want %v", tc.path, got, tc.want)
		}
	}
}
