package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const ManifestName = "manifest.jsonl"

// Session records one fixture run in manifest.jsonl next to the photos
type Session struct {
	ID           string // Run ID (UUID)
	SetName      string
	OutputDir    string
	ManifestFile *os.File
	stats        SessionStats
}

// SessionStats tracks statistics for a run
type SessionStats struct {
	Planned   int
	Generated int
	Loaded    int
	Errors    int
}

// ManifestEvent represents a single event in the manifest log
type ManifestEvent struct {
	Event string `json:"event"`
	Ts    string `json:"ts"`
	RunID string `json:"run_id"`

	// Photo fields
	File      string   `json:"file,omitempty"`
	Name      string   `json:"name,omitempty"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
	Taken     string   `json:"taken,omitempty"`
	Size      int64    `json:"size,omitempty"`
	Hash      string   `json:"sha256,omitempty"`

	// Simulator fields
	Device string `json:"device,omitempty"`
	Count  int    `json:"count,omitempty"`

	Error           string `json:"error,omitempty"`
	ErrorCategory   string `json:"error_category,omitempty"`
	ErrorSeverity   string `json:"error_severity,omitempty"`
	ErrorSuggestion string `json:"error_suggestion,omitempty"`

	// Session start/end fields
	Set       string `json:"set,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
	Total     int    `json:"total,omitempty"`
	Generated int    `json:"generated,omitempty"`
	Loaded    int    `json:"loaded,omitempty"`
	ErrCount  int    `json:"errors,omitempty"`
}

// NewSession opens (or appends to) the manifest in outputDir
func NewSession(outputDir, setName string) (*Session, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifestPath := filepath.Join(outputDir, ManifestName)
	manifestFile, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &Session{
		ID:           uuid.NewString(),
		SetName:      setName,
		OutputDir:    outputDir,
		ManifestFile: manifestFile,
	}, nil
}

// LogSessionStart writes the session start event
func (s *Session) LogSessionStart(total int) error {
	s.stats.Planned = total
	return s.writeEvent(ManifestEvent{
		Event:     "session_start",
		Set:       s.SetName,
		OutputDir: s.OutputDir,
		Total:     total,
	})
}

// LogGenerated records a written photo
func (s *Session) LogGenerated(p *GeneratedPhoto) error {
	s.stats.Generated++
	lat, lon := p.Job.Location.Latitude, p.Job.Location.Longitude
	return s.writeEvent(ManifestEvent{
		Event:     "generated",
		File:      filepath.Base(p.Path),
		Name:      p.Job.Location.Name,
		Latitude:  &lat,
		Longitude: &lon,
		Taken:     p.Job.Taken.Format(time.RFC3339),
		Size:      p.Size,
		Hash:      p.Hash,
	})
}

// LogLoaded records files pushed to a simulator
func (s *Session) LogLoaded(device string, count int) error {
	s.stats.Loaded += count
	return s.writeEvent(ManifestEvent{
		Event:  "loaded",
		Device: device,
		Count:  count,
	})
}

// LogDetailedError logs a categorized error with full details
func (s *Session) LogDetailedError(procErr *ProcessError) error {
	s.stats.Errors++
	return s.writeEvent(ManifestEvent{
		Event:           "error",
		File:            procErr.FilePath,
		Error:           procErr.OriginalErr.Error(),
		ErrorCategory:   string(procErr.Category),
		ErrorSeverity:   string(procErr.Severity),
		ErrorSuggestion: procErr.Suggestion,
	})
}

// LogSessionEnd writes the session end event with the running counts
func (s *Session) LogSessionEnd() error {
	return s.writeEvent(ManifestEvent{
		Event:     "session_end",
		Total:     s.stats.Planned,
		Generated: s.stats.Generated,
		Loaded:    s.stats.Loaded,
		ErrCount:  s.stats.Errors,
	})
}

// GetStats returns the current session statistics
func (s *Session) GetStats() SessionStats {
	return s.stats
}

// Close closes the manifest file
func (s *Session) Close() error {
	if s.ManifestFile != nil {
		return s.ManifestFile.Close()
	}
	return nil
}

// writeEvent writes a manifest event as a JSON line
func (s *Session) writeEvent(event ManifestEvent) error {
	event.Ts = time.Now().UTC().Format(time.RFC3339)
	event.RunID = s.ID

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := s.ManifestFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}
	return s.ManifestFile.Sync()
}
