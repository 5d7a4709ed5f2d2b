package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
)

// ErrorCategory represents the type of error encountered
type ErrorCategory string

const (
	ErrorCategoryIO          ErrorCategory = "io_error"           // File system, permissions, disk space
	ErrorCategoryMetadata    ErrorCategory = "metadata_error"     // EXIF could not be written or read back
	ErrorCategorySimulator   ErrorCategory = "simulator_error"    // simctl missing, no booted device, addmedia failed
	ErrorCategoryNetwork     ErrorCategory = "network_error"      // SVG download or object storage
	ErrorCategoryUnsupported ErrorCategory = "unsupported_format" // Not a JPEG, unknown output format
	ErrorCategoryUnknown     ErrorCategory = "unknown_error"
)

// ErrorSeverity indicates how critical the error is
type ErrorSeverity string

const (
	ErrorSeverityCritical ErrorSeverity = "critical" // The batch cannot continue
	ErrorSeverityError    ErrorSeverity = "error"    // One file failed
	ErrorSeverityWarning  ErrorSeverity = "warning"  // Files are fine, an optional step failed
)

// ProcessError is a categorized failure on one fixture file
type ProcessError struct {
	FilePath    string
	Category    ErrorCategory
	Severity    ErrorSeverity
	OriginalErr error
	Suggestion  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s/%s] %s: %v", e.Severity, e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// CategorizeError classifies err and attaches a suggestion for the user
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	procErr := &ProcessError{FilePath: filePath, OriginalErr: err}
	errStr := strings.ToLower(err.Error())

	var simErr *SimulatorError
	var netErr net.Error

	switch {
	case errors.Is(err, context.Canceled):
		procErr.Category = ErrorCategoryUnknown
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Interrupted - rerun the command to regenerate the remaining files"

	// Simulator
	case errors.Is(err, ErrNoBootedDevice):
		procErr.Category = ErrorCategorySimulator
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Boot a simulator (open -a Simulator) and rerun, or add the photos manually"

	case errors.As(err, &simErr):
		procErr.Category = ErrorCategorySimulator
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Check that the simulator is still booted and the file is a valid JPEG"

	case strings.Contains(errStr, "executable file not found"):
		procErr.Category = ErrorCategorySimulator
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Xcode command line tools are missing - install them or add the photos manually"

	// Disk/Filesystem errors (CRITICAL)
	case strings.Contains(errStr, "no space left"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Free up disk space in the output directory and retry"

	case strings.Contains(errStr, "permission denied"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Check write permissions on the output directory or pass --out"

	case strings.Contains(errStr, "read-only file system"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Output filesystem is read-only - pass --out with a writable directory"

	case strings.Contains(errStr, "no such file"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "File disappeared before it could be processed"

	// Network
	case errors.As(err, &netErr),
		strings.Contains(errStr, "unexpected status"),
		strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"):
		procErr.Category = ErrorCategoryNetwork
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Check network access and the configured URL or storage endpoint"

	case errors.Is(err, errNotJPEG),
		strings.Contains(errStr, "unsupported"):
		procErr.Category = ErrorCategoryUnsupported
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Only JPEG files are handled - the file was skipped"

	case strings.Contains(errStr, "exif") || strings.Contains(errStr, "metadata"):
		procErr.Category = ErrorCategoryMetadata
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Metadata could not be written - retry without --exiftool or check the exiftool install"

	default:
		procErr.Category = ErrorCategoryUnknown
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Unexpected error - check logs for details"
	}

	return procErr
}

// ErrorStats tracks errors across a batch or a watch session
type ErrorStats struct {
	Total       int
	Critical    int
	Errors      int
	Warnings    int
	ByCategory  map[ErrorCategory]int
	LastErrors  []*ProcessError // Last 5 errors for quick diagnosis
	Consecutive int
}

func NewErrorStats() *ErrorStats {
	return &ErrorStats{
		ByCategory: make(map[ErrorCategory]int),
		LastErrors: make([]*ProcessError, 0, 5),
	}
}

func (s *ErrorStats) Add(err *ProcessError) {
	s.Total++
	s.Consecutive++
	s.ByCategory[err.Category]++

	switch err.Severity {
	case ErrorSeverityCritical:
		s.Critical++
	case ErrorSeverityError:
		s.Errors++
	case ErrorSeverityWarning:
		s.Warnings++
	}

	if len(s.LastErrors) >= 5 {
		s.LastErrors = s.LastErrors[1:]
	}
	s.LastErrors = append(s.LastErrors, err)
}

func (s *ErrorStats) ResetConsecutive() {
	s.Consecutive = 0
}

// ShouldAbort reports whether the remaining work should be abandoned
func (s *ErrorStats) ShouldAbort() (bool, string) {
	if s.Critical > 0 {
		return true, "Critical error detected - aborting"
	}
	if s.Consecutive >= 5 {
		return true, "5 consecutive failures - the simulator or filesystem is likely unavailable"
	}
	return false, ""
}

// GenerateReport creates a human-readable error report
func (s *ErrorStats) GenerateReport() string {
	var report strings.Builder

	report.WriteString(fmt.Sprintf("\n❌ Run encountered %d errors:\n\n", s.Total))

	if s.Critical > 0 {
		report.WriteString(fmt.Sprintf("  🔴 Critical: %d\n", s.Critical))
	}
	if s.Errors > 0 {
		report.WriteString(fmt.Sprintf("  🟠 Errors:   %d\n", s.Errors))
	}
	if s.Warnings > 0 {
		report.WriteString(fmt.Sprintf("  🟡 Warnings: %d\n", s.Warnings))
	}

	report.WriteString("\nError categories:\n")
	cats := make([]string, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)
	for _, cat := range cats {
		report.WriteString(fmt.Sprintf("  • %s: %d\n", cat, s.ByCategory[ErrorCategory(cat)]))
	}

	report.WriteString("\nRecent errors:\n")
	for i, err := range s.LastErrors {
		report.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, err.FilePath))
		report.WriteString(fmt.Sprintf("   Category: %s | Severity: %s\n", err.Category, err.Severity))
		report.WriteString(fmt.Sprintf("   Error: %v\n", err.OriginalErr))
		if err.Suggestion != "" {
			report.WriteString(fmt.Sprintf("   💡 Suggestion: %s\n", err.Suggestion))
		}
	}

	return report.String()
}
