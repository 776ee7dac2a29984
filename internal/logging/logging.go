// =============================================================================
// Tabular File Splitter - Logging Module
// =============================================================================
//
// This module constructs the per-run logger. Each process invocation gets one
// append-only log file in the configured log directory, named after the
// process start timestamp (e.g. logs/2024-01-15-09-30-00.log).
//
// DESIGN:
//   - The logger is an explicitly constructed instance, returned to the
//     caller and injected into every component that logs. There is no
//     package-level or ambient logger anywhere in the application.
//   - Every entry carries a short run ID so interleaved or rotated files
//     can be correlated back to a single invocation.
//   - File output goes through lumberjack so a single runaway run cannot
//     grow a log file without bound.
//
// EVENTS:
//   - Info  : one per successfully written part file (path, format, rows)
//   - Error : one per failed input file (file, error detail)
//
// =============================================================================

package logging

import (
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// timestampLayout names the per-run log file after the process start time.
const timestampLayout = "2006-01-02-15-04-05"

// =============================================================================
// LOGGER CONSTRUCTION
// =============================================================================

// New builds the per-run logger writing to a timestamp-named file under
// logDir. The returned io.Closer closes the underlying log file and should
// be deferred by the caller.
//
// PARAMETERS:
//   - logDir: The directory receiving the log file.
//   - verbose: Enables debug-level logging when true.
//
// RETURNS:
//   - A *logrus.Entry carrying the run ID field; all components log
//     through this entry.
//   - An io.Closer for the underlying log file.
func New(logDir string, verbose bool) (*logrus.Entry, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, time.Now().Format(timestampLayout)+".log"),
		MaxSize:    100, // megabytes
		MaxBackups: 3,
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Short run ID, enough to tell invocations apart in rotated files.
	runID := uuid.NewString()[:8]

	return logger.WithField("run", runID), out
}

// Nop returns a logger entry that discards everything. Intended for tests
// and for callers that want splitting without a log sink.
func Nop() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
