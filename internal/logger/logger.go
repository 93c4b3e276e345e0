// Package logger is the leveled stderr logger shared by every package.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Level represents log level
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

var (
	globalLevel   = LevelInfo
	globalColored = true
	globalMu      sync.RWMutex
)

var globalOut io.Writer = os.Stderr

var (
	styleTrace = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8F98")) // slate
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB4CA")) // lapis
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98BB6C")) // emerald
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6C384")) // gold ingot
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#E46876")) // redstone
	styleFaint = lipgloss.NewStyle().Faint(true)
)

// Logger provides leveled logging under a fixed prefix
type Logger struct {
	prefix string
}

// New creates a new logger with the given prefix
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

// With returns a logger whose prefix is extended by sub, e.g. "match/dtm".
func (l *Logger) With(sub string) *Logger {
	if sub == "" {
		return l
	}
	return &Logger{prefix: l.prefix + "/" + sub}
}

// Prefix returns the logger's prefix.
func (l *Logger) Prefix() string { return l.prefix }

// SetGlobalLevel sets the global log level
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLevel = level
}

// GlobalLevel returns the current global level.
func GlobalLevel() Level {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLevel
}

// ParseLevel converts a string to a Level, returning an error if unrecognized.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (valid: trace, debug, info, warn, error)", s)
}

// SetGlobalLevelFromString sets log level from string
func SetGlobalLevelFromString(level string) {
	if l, err := ParseLevel(level); err == nil {
		SetGlobalLevel(l)
	}
}

// SetColored enables or disables colored output
func SetColored(colored bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalColored = colored
}

// SetOutput redirects every logger. It returns the previous writer so tests
// can restore it.
func SetOutput(w io.Writer) io.Writer {
	globalMu.Lock()
	defer globalMu.Unlock()
	prev := globalOut
	globalOut = w
	return prev
}

// AutoColor enables color only when stderr is a terminal and NO_COLOR is
// unset.
func AutoColor() {
	SetColored(term.IsTerminal(int(os.Stderr.Fd())) && !termenv.EnvNoColor())
}

func (l *Logger) log(level Level, style lipgloss.Style, format string, args ...any) {
	globalMu.RLock()
	if level < globalLevel {
		globalMu.RUnlock()
		return
	}
	colored := globalColored
	out := globalOut
	globalMu.RUnlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	levelStr := level.String()

	if colored {
		label := style.Render("[" + levelStr + "]")
		fmt.Fprintf(out, "%s %s %s %s\n",
			styleFaint.Render(timestamp), label, styleFaint.Render("["+l.prefix+"]"), msg)
	} else {
		fmt.Fprintf(out, "%s [%s] [%s] %s\n",
			timestamp, levelStr, l.prefix, msg)
	}
}

// Trace logs a trace message (most verbose)
func (l *Logger) Trace(format string, args ...any) {
	l.log(LevelTrace, styleTrace, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, styleDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, styleInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, styleWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, styleError, format, args...)
}
