package internal

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured JSON lines to a log file. Console progress stays
// on stdout; this is the record kept next to it.
type Logger struct {
	z *zap.SugaredLogger
}

// NewLogger logs to path. An empty path gives a logger that discards everything.
func NewLogger(path string, debug bool) (*Logger, error) {
	if path == "" {
		return &Logger{z: zap.NewNop().Sugar()}, nil
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.MessageKey = "message"
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &Logger{z: z.Sugar()}, nil
}

// NopLogger is used by tests and library callers that do not care
func NopLogger() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.z.Infow(msg, keysAndValues...)
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.z.Debugw(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.z.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.z.Errorw(msg, keysAndValues...)
}

// Close flushes buffered entries
func (l *Logger) Close() error {
	// Sync on stderr/stdout sinks returns EINVAL on some platforms
	_ = l.z.Sync()
	return nil
}
