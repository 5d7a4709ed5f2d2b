package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var photoExts = []string{".jpg", ".jpeg"}

// isPhotoFile reports whether path has a JPEG extension
func isPhotoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range photoExts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanPhotos lists the JPEG files directly inside dir, sorted by name.
// Hidden files and in-progress .tmp writes are skipped.
func ScanPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if isPhotoFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
