// File: logger.go
// Title: Logger
// Description: Leveled structured logger. With* methods return copies so a
//              logger can be specialised per component or per request;
//              copies share the output and its write lock.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-06-02 v0.2.0: Dropped async buffering and user context, added Discard
// - 2025-07-14 v0.3.0: Trimmed to the methods the toolchain calls

package log

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config configures NewWithConfig. A nil Output means stderr.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string

	// EnableCaller adds the file and line of the code that logged
	EnableCaller bool
}

// sink serialises writes from a logger and all of its copies
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(p []byte) {
	s.mu.Lock()
	_, _ = s.w.Write(p)
	s.mu.Unlock()
}

// Logger writes structured records at or above its minimum level
type Logger struct {
	min       Level
	formatter Formatter
	out       *sink
	name      string
	requestID string
	fields    Fields
	caller    bool
}

// New returns a JSON logger at info level on stderr
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON})
}

// NewWithConfig builds a logger from cfg
func NewWithConfig(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		min:       cfg.Level,
		formatter: NewFormatter(cfg.Format),
		out:       &sink{w: out},
		name:      cfg.Name,
		caller:    cfg.EnableCaller,
	}
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	return NewWithConfig(Config{Level: levelOff, Output: io.Discard})
}

func (l *Logger) copy() *Logger {
	c := *l
	c.fields = l.fields.Clone()
	return &c
}

// WithName returns a copy with the logger name replaced
func (l *Logger) WithName(name string) *Logger {
	c := l.copy()
	c.name = name
	return c
}

// WithField returns a copy that adds key to every record
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.copy()
	if c.fields == nil {
		c.fields = make(Fields, 1)
	}
	c.fields[key] = value
	return c
}

// WithRequestID returns a copy that tags every record with id
func (l *Logger) WithRequestID(id string) *Logger {
	c := l.copy()
	c.requestID = id
	return c
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level { return l.min }

// IsLevelEnabled reports whether records at level are written
func (l *Logger) IsLevelEnabled(level Level) bool { return level >= l.min }

func (l *Logger) Trace(message string, fields ...Fields) { l.emit(LevelTrace, message, nil, fields) }
func (l *Logger) Debug(message string, fields ...Fields) { l.emit(LevelDebug, message, nil, fields) }
func (l *Logger) Info(message string, fields ...Fields)  { l.emit(LevelInfo, message, nil, fields) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.emit(LevelWarn, message, nil, fields) }
func (l *Logger) Error(message string, fields ...Fields) { l.emit(LevelError, message, nil, fields) }

// WarnWithErr logs a warning carrying err
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.emit(LevelWarn, message, err, fields)
}

// StartTimer starts timing operation; see Timer
func (l *Logger) StartTimer(operation string) *Timer {
	return &Timer{logger: l, operation: operation, start: time.Now(), level: LevelDebug}
}

func (l *Logger) emit(level Level, message string, err error, sets []Fields) {
	if !l.IsLevelEnabled(level) {
		return
	}

	r := &Record{
		Time:      time.Now(),
		Level:     level,
		Message:   message,
		Logger:    l.name,
		RequestID: l.requestID,
		Fields:    l.fields.Clone(),
		Err:       err,
	}
	for _, set := range sets {
		for k, v := range set {
			if r.Fields == nil {
				r.Fields = make(Fields, len(set))
			}
			r.Fields[k] = v
		}
	}
	if l.caller {
		r.Caller = callSite()
	}

	line, ferr := l.formatter.Format(r)
	if ferr != nil {
		return
	}
	l.out.write(line)
}

// callSite returns file:line of the first frame outside Logger and Timer
// methods, so adapters wrapping a Logger report their caller.
func callSite() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, ".(*Logger).") && !strings.Contains(frame.Function, ".(*Timer).") {
			return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
		}
		if !more {
			return ""
		}
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the process wide logger used when none is configured
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process wide logger
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
