package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileHash(t *testing.T) {
	tempDir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}

			hash, err := fileHash(path)
			if err != nil {
				t.Fatalf("fileHash failed: %v", err)
			}
			if hash != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, hash)
			}
		})
	}

	if _, err := fileHash(filepath.Join(tempDir, "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "photo.jpg")

	if err := writeFileAtomic(dest, []byte("first")); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}
	if err := writeFileAtomic(dest, []byte("second")); err != nil {
		t.Fatalf("writeFileAtomic overwrite failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file left behind")
	}

	if err := writeFileAtomic(filepath.Join(tempDir, "missing", "photo.jpg"), []byte("x")); err == nil {
		t.Error("Expected error when the directory does not exist")
	}
}
