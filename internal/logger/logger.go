// Package logger is a small leveled logger. Output is discarded unless a
// log file is configured, so logging never draws over the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
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
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// sink is the shared destination of a logger and its named children.
type sink struct {
	mu     sync.Mutex
	level  Level
	logger *log.Logger
	file   *os.File
}

// Logger writes leveled messages, optionally tagged with a component name.
type Logger struct {
	sink *sink
	name string
}

// Default is the process-wide logger used by the package-level functions.
var Default *Logger

func init() {
	Default = New()
}

// New creates a logger configured from CAMPAIGNR_LOG_LEVEL and
// CAMPAIGNR_LOG_FILE.
func New() *Logger {
	l := &Logger{sink: &sink{
		level:  LevelInfo,
		logger: log.New(io.Discard, "", log.LstdFlags|log.Lmicroseconds),
	}}
	_ = l.Configure(os.Getenv("CAMPAIGNR_LOG_LEVEL"), os.Getenv("CAMPAIGNR_LOG_FILE"))
	return l
}

// Configure applies a level and log file. Empty values leave the current
// setting unchanged. An invalid level is reported and ignored.
func (l *Logger) Configure(level, file string) error {
	var errs []string
	if level != "" {
		lv, err := ParseLevel(level)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			l.SetLevel(lv)
		}
	}
	if file != "" {
		if err := l.openFile(file); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuring logger: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (l *Logger) openFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = f
	s.logger.SetOutput(f)
	return nil
}

// Named returns a logger that prefixes messages with name and shares the
// receiver's level and output.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{sink: l.sink, name: name}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.logger.SetOutput(io.Discard)
	return err
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.logger.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...any) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...any) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...any) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...any) {
	l.log(LevelError, format, v...)
}

func (l *Logger) log(level Level, format string, v ...any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	if l.name != "" {
		s.logger.Printf("[%s] %s: %s", level, l.name, msg)
		return
	}
	s.logger.Printf("[%s] %s", level, msg)
}

// Named returns a child of the default logger.
func Named(name string) *Logger {
	return Default.Named(name)
}

// Configure reconfigures the default logger.
func Configure(level, file string) error {
	return Default.Configure(level, file)
}

// Debug logs a debug message using the default logger
func Debug(format string, v ...any) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...any) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...any) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...any) {
	Default.Error(format, v...)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
