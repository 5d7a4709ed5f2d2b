package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// ErrNoBootedDevice is returned when no simulator reports "(Booted)"
var ErrNoBootedDevice = errors.New("no booted simulator found")

// CommandRunner runs an external command and returns its combined output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// SimulatorError is a failed media transfer
type SimulatorError struct {
	Device string
	File   string
	Output string
	Err    error
}

func (e *SimulatorError) Error() string {
	msg := fmt.Sprintf("simulator addmedia failed for %s on %s: %v", e.File, e.Device, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *SimulatorError) Unwrap() error {
	return e.Err
}

// Simulator talks to the device simulator control tool (xcrun simctl)
type Simulator struct {
	Tool    string        // default "xcrun"
	Timeout time.Duration // per invocation, 0 for none
	Runner  CommandRunner
	Log     *Logger
}

func (s *Simulator) tool() string {
	if s.Tool == "" {
		return "xcrun"
	}
	return s.Tool
}

func (s *Simulator) run(ctx context.Context, args ...string) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return runner.Run(ctx, s.tool(), args...)
}

// bootedRe captures the parenthesised token right before "(Booted)"
var bootedRe = regexp.MustCompile(`\(([^()]+)\)\s*\(Booted\)`)

// FindBootedDevice picks the first booted device out of
// `simctl list devices` output.
func FindBootedDevice(listOutput string) (string, error) {
	for _, line := range strings.Split(listOutput, "\n") {
		if !strings.Contains(line, "(Booted)") {
			continue
		}
		if m := bootedRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), nil
		}
	}
	return "", ErrNoBootedDevice
}

// Booted returns the id of the first booted simulator
func (s *Simulator) Booted(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "simctl", "list", "devices")
	if err != nil {
		return "", fmt.Errorf("simulator list devices failed: %w", err)
	}
	return FindBootedDevice(string(out))
}

// AddMedia pushes files into the device's photo library one at a time. The
// first failure stops the batch; the count of files already added is returned.
func (s *Simulator) AddMedia(ctx context.Context, device string, files []string) (int, error) {
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		out, err := s.run(ctx, "simctl", "addmedia", device, f)
		if err != nil {
			return i, &SimulatorError{Device: device, File: f, Output: strings.TrimSpace(string(out)), Err: err}
		}
		if s.Log != nil {
			s.Log.Info("media added", "device", device, "file", f)
		}
	}
	return len(files), nil
}

// ManualAddCommand is the fallback printed when no simulator is booted
func (s *Simulator) ManualAddCommand(dir string) string {
	return fmt.Sprintf("%s simctl addmedia booted %s/*.jpg", s.tool(), dir)
}
