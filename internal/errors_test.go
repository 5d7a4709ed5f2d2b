package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"disk full", errors.New("write failed: no space left on device"), ErrorCategoryIO, ErrorSeverityCritical},
		{"permission", errors.New("open /tmp/x/01_spot.jpg: permission denied"), ErrorCategoryIO, ErrorSeverityCritical},
		{"missing file", errors.New("stat /tmp/a.jpg: no such file or directory"), ErrorCategoryIO, ErrorSeverityError},
		{"no booted device", fmt.Errorf("loading photos: %w", ErrNoBootedDevice), ErrorCategorySimulator, ErrorSeverityWarning},
		{"addmedia failed", &SimulatorError{Device: "D", File: "a.jpg", Err: errors.New("exit status 1")}, ErrorCategorySimulator, ErrorSeverityError},
		{"xcrun missing", errors.New(`exec: "xcrun": executable file not found in $PATH`), ErrorCategorySimulator, ErrorSeverityWarning},
		{"http status", errors.New("failed to fetch http://x: unexpected status 404 Not Found"), ErrorCategoryNetwork, ErrorSeverityError},
		{"not a jpeg", fmt.Errorf("embed: %w", errNotJPEG), ErrorCategoryUnsupported, ErrorSeverityWarning},
		{"exif write", errors.New("failed to embed exif metadata in a.jpg"), ErrorCategoryMetadata, ErrorSeverityError},
		{"interrupted", fmt.Errorf("generate: %w", context.Canceled), ErrorCategoryUnknown, ErrorSeverityCritical},
		{"other", errors.New("something odd"), ErrorCategoryUnknown, ErrorSeverityError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			procErr := CategorizeError("/test/file.jpg", tc.err)
			if procErr.Category != tc.category {
				t.Errorf("Expected %s category, got %s", tc.category, procErr.Category)
			}
			if procErr.Severity != tc.severity {
				t.Errorf("Expected %s severity, got %s", tc.severity, procErr.Severity)
			}
			if procErr.Suggestion == "" {
				t.Error("Expected a suggestion")
			}
			if !errors.Is(procErr, tc.err) {
				t.Error("Expected ProcessError to unwrap to the original error")
			}
		})
	}
}

func TestCategorizeError_Nil(t *testing.T) {
	if CategorizeError("/test/file.jpg", nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestErrorStats_ShouldAbort_Critical(t *testing.T) {
	stats := NewErrorStats()

	stats.Add(&ProcessError{
		FilePath: "/test/file.jpg",
		Category: ErrorCategoryIO,
		Severity: ErrorSeverityCritical,
	})

	shouldAbort, reason := stats.ShouldAbort()
	if !shouldAbort {
		t.Error("Expected abort on critical error")
	}
	if !strings.Contains(reason, "Critical") {
		t.Errorf("Expected 'Critical' in reason, got: %s", reason)
	}
}

func TestErrorStats_ShouldAbort_ConsecutiveErrors(t *testing.T) {
	stats := NewErrorStats()

	for i := 0; i < 4; i++ {
		stats.Add(&ProcessError{Category: ErrorCategorySimulator, Severity: ErrorSeverityError})
	}
	if abort, _ := stats.ShouldAbort(); abort {
		t.Error("Did not expect abort after 4 errors")
	}

	stats.Add(&ProcessError{Category: ErrorCategorySimulator, Severity: ErrorSeverityError})
	shouldAbort, reason := stats.ShouldAbort()
	if !shouldAbort {
		t.Error("Expected abort after 5 consecutive errors")
	}
	if !strings.Contains(reason, "5 consecutive") {
		t.Errorf("Expected '5 consecutive' in reason, got: %s", reason)
	}
}

func TestErrorStats_ResetConsecutive(t *testing.T) {
	stats := NewErrorStats()

	for i := 0; i < 3; i++ {
		stats.Add(&ProcessError{Category: ErrorCategoryIO, Severity: ErrorSeverityError})
	}
	if stats.Consecutive != 3 {
		t.Errorf("Expected 3 consecutive errors, got %d", stats.Consecutive)
	}

	stats.ResetConsecutive()

	if stats.Consecutive != 0 {
		t.Errorf("Expected 0 consecutive errors after reset, got %d", stats.Consecutive)
	}
	if stats.Total != 3 {
		t.Errorf("Reset should keep the total, got %d", stats.Total)
	}
}

func TestErrorStats_GenerateReport(t *testing.T) {
	stats := NewErrorStats()

	stats.Add(&ProcessError{
		FilePath:    "/tmp/kansai_photos/day1_01_大阪城.jpg",
		Category:    ErrorCategorySimulator,
		Severity:    ErrorSeverityError,
		OriginalErr: errors.New("exit status 1"),
		Suggestion:  "Check that the simulator is still booted",
	})
	stats.Add(&ProcessError{
		FilePath:    "/tmp/kansai_photos/notes.txt",
		Category:    ErrorCategoryUnsupported,
		Severity:    ErrorSeverityWarning,
		OriginalErr: errors.New("unsupported file"),
	})

	report := stats.GenerateReport()

	for _, want := range []string{
		"Run encountered 2 errors",
		"Error categories",
		"simulator_error: 1",
		"Recent errors",
		"day1_01_大阪城.jpg",
		"Check that the simulator is still booted",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}

func TestErrorStats_LastErrorsCapped(t *testing.T) {
	stats := NewErrorStats()

	for i := 0; i < 8; i++ {
		stats.Add(&ProcessError{FilePath: fmt.Sprintf("f%d.jpg", i), Category: ErrorCategoryIO, Severity: ErrorSeverityError})
	}

	if len(stats.LastErrors) != 5 {
		t.Fatalf("Expected 5 recent errors, got %d", len(stats.LastErrors))
	}
	if stats.LastErrors[0].FilePath != "f3.jpg" {
		t.Errorf("Expected oldest kept error f3.jpg, got %s", stats.LastErrors[0].FilePath)
	}
	if stats.ByCategory[ErrorCategoryIO] != 8 {
		t.Errorf("Expected 8 IO errors, got %d", stats.ByCategory[ErrorCategoryIO])
	}
}
