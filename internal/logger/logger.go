// Package logger provides namespaced debug logging and optional file logging
// for stratcalc.
//
// Debug loggers are created per component with New("area:component") and are
// switched on with the DEBUG environment variable, using the same pattern
// syntax as the JavaScript debug package:
//
//	DEBUG=*                  enable everything
//	DEBUG=calc:*             enable one area
//	DEBUG=calc:*,cmd:root    several patterns, comma separated
//	DEBUG=*,-calc:kind       exclude with a leading dash
//
// Output goes to stderr as "namespace message +elapsed". When a file logger
// has been initialized with InitFileLogger, every debug line is mirrored to
// it at DEBUG level. Set DEBUG_COLORS=0 to disable ANSI colors.
//
// Loggers are usually package-level variables, so they exist before any .env
// file is loaded. Call Reconfigure after changing DEBUG or DEBUG_COLORS to
// re-evaluate every logger created so far.
package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const colorReset = "\033[0m"

var colorPalette = []string{
	"\033[36m", // cyan
	"\033[32m", // green
	"\033[33m", // yellow
	"\033[35m", // magenta
	"\033[34m", // blue
	"\033[31m", // red
	"\033[96m", // bright cyan
	"\033[92m", // bright green
	"\033[93m", // bright yellow
	"\033[95m", // bright magenta
}

var (
	isTTY = term.IsTerminal(int(os.Stderr.Fd()))

	// registryMu guards debugColors and loggers
	registryMu  sync.Mutex
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	loggers     []*Logger
)

// Logger is a namespaced debug logger
type Logger struct {
	namespace string
	enabled   atomic.Bool

	mu      sync.Mutex
	color   string
	lastLog time.Time
}

// New creates a logger for namespace, enabled according to the current DEBUG
// value. The logger is re-evaluated by later calls to Reconfigure.
func New(namespace string) *Logger {
	l := &Logger{
		namespace: namespace,
		lastLog:   time.Now(),
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	l.configure()
	loggers = append(loggers, l)
	return l
}

// Reconfigure re-reads DEBUG and DEBUG_COLORS and applies them to every
// logger created with New.
func Reconfigure() {
	registryMu.Lock()
	defer registryMu.Unlock()

	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	for _, l := range loggers {
		l.configure()
	}
}

// configure must be called with registryMu held
func (l *Logger) configure() {
	l.enabled.Store(computeEnabled(l.namespace))

	l.mu.Lock()
	l.color = selectColor(l.namespace)
	l.mu.Unlock()
}

// Enabled reports whether the logger writes output
func (l *Logger) Enabled() bool {
	return l.enabled.Load()
}

// Printf formats its arguments like fmt.Printf and logs the result
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.output(fmt.Sprintf(format, args...))
}

// Print concatenates its arguments like fmt.Sprint and logs the result
func (l *Logger) Print(args ...any) {
	if !l.Enabled() {
		return
	}
	l.output(fmt.Sprint(args...))
}

func (l *Logger) output(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	color := l.color
	l.mu.Unlock()

	if color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s %s+%s%s\n",
			color, l.namespace, colorReset, message, color, formatDiff(diff), colorReset)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, formatDiff(diff))
	}

	// File output is plain text without colors
	LogDebug(l.namespace, "%s", message)
}

func formatDiff(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}

// selectColor picks a stable palette color for a namespace, or "" when
// colors are disabled or stderr is not a terminal
func selectColor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(namespace))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

// computeEnabled evaluates the DEBUG patterns for namespace. Exclusions
// (patterns starting with "-") take precedence over inclusions.
func computeEnabled(namespace string) bool {
	debugEnv := os.Getenv("DEBUG")
	if debugEnv == "" {
		return false
	}

	enabled := false
	for _, pattern := range strings.Split(debugEnv, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "-") {
			if matchPattern(namespace, pattern[1:]) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern matches namespace against a pattern with "*" wildcards
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return namespace == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(namespace, parts[0]) {
		return false
	}
	rest := namespace[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return strings.HasSuffix(rest, last)
}
