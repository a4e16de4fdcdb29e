package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	logger  *slog.Logger
	logFile *os.File
	level   = new(slog.LevelVar)
	runID   = uuid.NewString()
	mu      sync.Mutex
	isSetup bool
)

func init() {
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", runID)
}

// SetupLogger tees log output to the specified file and sets the level.
// An empty path keeps logging on stderr only.
func SetupLogger(logFilePath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	if isSetup || logFilePath == "" {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger = newLogger(io.MultiWriter(os.Stderr, logFile))
	logger.Debug(fmt.Sprintf("--- snapdedup log started at %s ---", time.Now().Format(time.RFC3339)))

	isSetup = true
	return nil
}

// SetOutput redirects all log records to w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// CloseLogger closes the log file
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logger.Debug(fmt.Sprintf("--- snapdedup log closed at %s ---", time.Now().Format(time.RFC3339)))
		logFile.Close()
		logFile = nil
		logger = newLogger(os.Stderr)
		isSetup = false
	}
}

// RunID identifies the current process in every log record
func RunID() string {
	return runID
}

func logf(lvl slog.Level, format string, args ...interface{}) {
	mu.Lock()
	l := logger
	mu.Unlock()

	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	logf(slog.LevelInfo, format, args...)
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	logf(slog.LevelDebug, format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logf(slog.LevelError, format, args...)
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	logf(slog.LevelWarn, format, args...)
}

// LogImageMoved logs a relocation decision for a snapshot
func LogImageMoved(name string, score float64, dryRun bool) {
	mu.Lock()
	l := logger
	mu.Unlock()

	msg := "MOVED"
	if dryRun {
		msg = "WOULD MOVE"
	}
	l.Info(msg, "file", name, "score", score)
}
