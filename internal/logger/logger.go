// Package logger is the process-wide diagnostic log. Everything except
// Error is dropped unless verbose mode is on, which keeps tier fallbacks
// invisible to customers using the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type level string

const (
	debugLevel level = "DEBUG"
	infoLevel  level = "INFO"
	warnLevel  level = "WARN"
	errorLevel level = "ERROR"
)

var (
	verbose atomic.Bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetVerbose turns verbose output on or off.
func SetVerbose(v bool) { verbose.Store(v) }

// IsVerbose reports whether verbose output is on.
func IsVerbose() bool { return verbose.Load() }

// SetOutput redirects the log. The default is stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// Debug logs internal detail such as per-stage chunk counts.
func Debug(format string, args ...any) { logf(debugLevel, format, args...) }

// Info logs a state change, for example a tier connecting.
func Info(format string, args ...any) { logf(infoLevel, format, args...) }

// Warn logs a failure that was recovered from.
func Warn(format string, args ...any) { logf(warnLevel, format, args...) }

// Error logs a failure the user needs to see, even when not verbose.
func Error(format string, args ...any) { logf(errorLevel, format, args...) }

// Section prints a banner between phases of a verbose run.
func Section(name string) {
	if IsVerbose() {
		write(fmt.Sprintf("\n=== %s ===\n", name))
	}
}

func logf(l level, format string, args ...any) {
	if l != errorLevel && !IsVerbose() {
		return
	}
	write(fmt.Sprintf("[%s] %s\n", l, fmt.Sprintf(format, args...)))
}

func write(line string) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = io.WriteString(out, line)
}
