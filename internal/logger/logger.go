// Package logger provides leveled logging for cleanfetch.
// Debug, info and warning messages are printed only in verbose mode
// (the --verbose flag); errors are always printed. Output goes to stderr
// so it never mixes with converted documents or the stdio MCP transport.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

// Log levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

const timestampLayout = "15:04:05.000"

var (
	mu         sync.Mutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetTimestamps prefixes every line with the wall-clock time when enabled.
// Long-running servers turn this on; one-shot commands leave it off.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Writer returns an io.Writer that logs each write as one message at
// level. Suitable for log.New when a library wants a *log.Logger.
func Writer(level Level) io.Writer {
	return levelWriter(level)
}

type levelWriter Level

func (w levelWriter) Write(p []byte) (int, error) {
	logf(Level(w), "%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func logf(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < LevelError && !verbose {
		return
	}

	var b strings.Builder
	if timestamps {
		b.WriteString(now().Format(timestampLayout))
		b.WriteByte(' ')
	}
	b.WriteByte('[')
	b.WriteString(level.String())
	b.WriteString("] ")
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	io.WriteString(output, b.String()) //nolint:errcheck
}
