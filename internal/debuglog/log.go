package debuglog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pders01/homily/internal/message"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

// FileOptions controls the rotating file sink.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger is a levelled logger handle. Records go to the message queue as
// LogMessage values and, when configured, to a rotating file.
// A nil *Logger discards everything.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	sender message.Sender
	file   *log.Logger
	closer io.Closer
}

// New returns a logger that forwards records at or above level to sender.
// sender may be nil.
func New(level LogLevel, sender message.Sender) *Logger {
	return &Logger{level: level, sender: sender}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return New(LevelOff, nil)
}

// OpenFile attaches a rotating file sink.
func (l *Logger) OpenFile(opts FileOptions) error {
	if opts.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		l.closer.Close()
	}
	l.closer = lj
	l.file = log.New(lj, "homily ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// Close closes the log file if open
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.file = nil
	return err
}

func (l *Logger) logf(level LogLevel, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if level < l.level || level == LevelOff {
		l.mu.Unlock()
		return
	}
	file, sender := l.file, l.sender
	l.mu.Unlock()

	text := fmt.Sprintf(format, args...)
	if file != nil {
		file.Printf("[%s] %s", level, text)
	}
	if sender != nil {
		sender.Send(message.LogMessage{Text: level.String() + " -" + text})
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// FieldLogger appends key=value pairs to every record.
type FieldLogger struct {
	parent *Logger
	fields map[string]any
}

// WithFields returns a logger with the specified fields
func (l *Logger) WithFields(fields map[string]any) *FieldLogger {
	return &FieldLogger{parent: l, fields: fields}
}

// formatFields renders fields sorted by key so output is stable.
func (fl *FieldLogger) formatFields() string {
	if len(fl.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fl.fields))
	for k := range fl.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fl.fields[k]))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (fl *FieldLogger) logf(level LogLevel, format string, args ...any) {
	fl.parent.logf(level, "%s", fmt.Sprintf(format, args...)+fl.formatFields())
}

func (fl *FieldLogger) Debugf(format string, args ...any) { fl.logf(LevelDebug, format, args...) }
func (fl *FieldLogger) Infof(format string, args ...any)  { fl.logf(LevelInfo, format, args...) }
func (fl *FieldLogger) Warnf(format string, args ...any)  { fl.logf(LevelWarn, format, args...) }
func (fl *FieldLogger) Errorf(format string, args ...any) { fl.logf(LevelError, format, args...) }
