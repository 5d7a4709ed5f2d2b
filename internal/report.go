package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FixtureReport summarizes a directory of generated photos
type FixtureReport struct {
	Dir        string         `json:"dir"`
	Photos     int            `json:"photos"`
	TotalSize  int64          `json:"total_size_bytes"`
	Geotagged  int            `json:"geotagged"`
	MissingGPS []string       `json:"missing_gps,omitempty"`
	Span       TimeSpan       `json:"span"`
	Bounds     *Bounds        `json:"bounds,omitempty"`
	Days       map[string]int `json:"days"`
	Cameras    map[string]int `json:"cameras,omitempty"`
	Duplicates []DuplicateSet `json:"duplicates,omitempty"`

	ScanDuration time.Duration `json:"scan_duration"`
}

// TimeSpan is the earliest and latest capture time found
type TimeSpan struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Bounds is the bounding box of all geotags
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func (b *Bounds) extend(lat, lon float64) {
	b.MinLat = min(b.MinLat, lat)
	b.MaxLat = max(b.MaxLat, lat)
	b.MinLon = min(b.MinLon, lon)
	b.MaxLon = max(b.MaxLon, lon)
}

// DuplicateSet is a group of files with identical content
type DuplicateSet struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Size  int64    `json:"size_bytes"`
}

// AnalyzeFixtures reads the geotag of every photo in dir. Photos without a
// usable geotag are listed rather than failing the scan; their capture time
// falls back to the file modification time.
func AnalyzeFixtures(dir string) (*FixtureReport, error) {
	start := time.Now()

	files, err := ScanPhotos(dir)
	if err != nil {
		return nil, err
	}

	report := &FixtureReport{
		Dir:     dir,
		Days:    make(map[string]int),
		Cameras: make(map[string]int),
	}
	hashes := make(map[string][]string)

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		report.Photos++
		report.TotalSize += info.Size()

		hash, err := fileHash(path)
		if err != nil {
			return nil, err
		}
		hashes[hash] = append(hashes[hash], filepath.Base(path))

		taken := info.ModTime()
		if tag, err := ReadGeotag(path); err != nil {
			report.MissingGPS = append(report.MissingGPS, filepath.Base(path))
		} else {
			report.Geotagged++
			if report.Bounds == nil {
				report.Bounds = &Bounds{tag.Latitude, tag.Longitude, tag.Latitude, tag.Longitude}
			}
			report.Bounds.extend(tag.Latitude, tag.Longitude)
			if !tag.Taken.IsZero() {
				taken = tag.Taken
			}
			if camera := strings.TrimSpace(tag.Make + " " + tag.Model); camera != "" {
				report.Cameras[camera]++
			}
		}

		report.Days[taken.Format("2006-01-02")]++
		if report.Span.Earliest.IsZero() || taken.Before(report.Span.Earliest) {
			report.Span.Earliest = taken
		}
		if taken.After(report.Span.Latest) {
			report.Span.Latest = taken
		}
	}

	report.Duplicates = findDuplicateSets(hashes, dir)
	report.ScanDuration = time.Since(start)
	return report, nil
}

func findDuplicateSets(hashes map[string][]string, dir string) []DuplicateSet {
	var duplicates []DuplicateSet
	for hash, files := range hashes {
		if len(files) < 2 {
			continue
		}
		size := int64(0)
		if info, err := os.Stat(filepath.Join(dir, files[0])); err == nil {
			size = info.Size()
		}
		duplicates = append(duplicates, DuplicateSet{Hash: hash, Files: files, Size: size})
	}
	sort.Slice(duplicates, func(i, j int) bool {
		return duplicates[i].Files[0] < duplicates[j].Files[0]
	})
	return duplicates
}

// DisplayReport writes the report as a table or, with format "json", as JSON
func DisplayReport(w io.Writer, r *FixtureReport, format string) error {
	switch format {
	case "", "table":
		return displayReportTable(w, r)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	default:
		return fmt.Errorf("unknown report format %q (want table or json)", format)
	}
}

func displayReportTable(w io.Writer, r *FixtureReport) error {
	fmt.Fprintf(w, "=== Fixture report: %s ===\n\n", r.Dir)

	fmt.Fprintf(w, "📊 Overview:\n")
	fmt.Fprintf(w, "  - %d photos (%s)\n", r.Photos, humanize.Bytes(uint64(r.TotalSize)))
	fmt.Fprintf(w, "  - %d geotagged (%d%%)\n", r.Geotagged, percentage(r.Geotagged, r.Photos))
	fmt.Fprintf(w, "  - Scan completed in %v\n\n", r.ScanDuration.Round(time.Millisecond))

	if r.Photos == 0 {
		return nil
	}

	fmt.Fprintf(w, "📅 Capture dates: %s ~ %s\n",
		r.Span.Earliest.Format("2006/01/02 15:04"), r.Span.Latest.Format("2006/01/02 15:04"))
	days := make([]string, 0, len(r.Days))
	for d := range r.Days {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		fmt.Fprintf(w, "  - %s: %d photos\n", d, r.Days[d])
	}
	fmt.Fprintln(w)

	if r.Bounds != nil {
		fmt.Fprintf(w, "🗺️  Bounds: %.5f,%.5f ~ %.5f,%.5f\n\n", r.Bounds.MinLat, r.Bounds.MinLon, r.Bounds.MaxLat, r.Bounds.MaxLon)
	}

	if len(r.Cameras) > 0 {
		fmt.Fprintf(w, "📷 Cameras:\n")
		cameras := make([]string, 0, len(r.Cameras))
		for c := range r.Cameras {
			cameras = append(cameras, c)
		}
		sort.Strings(cameras)
		for _, c := range cameras {
			fmt.Fprintf(w, "  - %s: %d\n", c, r.Cameras[c])
		}
		fmt.Fprintln(w)
	}

	if len(r.MissingGPS) > 0 {
		fmt.Fprintf(w, "⚠️  Missing GPS (%d):\n", len(r.MissingGPS))
		for _, f := range r.MissingGPS {
			fmt.Fprintf(w, "  - %s\n", f)
		}
		fmt.Fprintln(w)
	}

	if len(r.Duplicates) > 0 {
		fmt.Fprintf(w, "🔁 Duplicates (%d sets):\n", len(r.Duplicates))
		for _, d := range r.Duplicates {
			fmt.Fprintf(w, "  - %s (%s)\n", strings.Join(d.Files, ", "), humanize.Bytes(uint64(d.Size)))
		}
	}
	return nil
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}
