package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level is a minimum severity for the Logger.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" or "error" to a Level. Unknown
// names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging throughout the application. It writes to
// stderr by default so that log lines stay out of the report on stdout.
type Logger struct {
	out   *log.Logger
	level Level
	color bool
}

// NewLogger creates a Logger writing to stderr at LevelInfo.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr, LevelInfo)
}

// NewLoggerTo creates a Logger writing to w, dropping entries below level.
// Color escapes are only emitted when w is an *os.File.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	_, isFile := w.(*os.File)
	return &Logger{
		out:   log.New(w, "", 0),
		level: level,
		color: isFile,
	}
}

// NopLogger discards everything. Handy in tests.
func NopLogger() *Logger {
	return &Logger{out: log.New(io.Discard, "", 0), level: LevelError + 1}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) write(level Level, tag, color, format string, args ...any) {
	if level < l.level {
		return
	}
	if l.color {
		tag = color + tag + "\033[0m"
	}
	l.out.Printf(fmt.Sprintf("[%s] %s %s\n", l.timestamp(), tag, format), args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, "INFO ", "\033[32m", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, "WARN ", "\033[33m", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, "ERROR", "\033[31m", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelDebug, "DEBUG", "\033[36m", format, args...)
}
