// ============================================================================
// exprfront - Expression language front end
// ============================================================================
//
// Package:     logging
// Description: Key/value logging adapter over the foundation logger, used
//              by the gRPC layer and the parse service
// Author:      msto63
// Created:     2025-06-02
// License:     MIT
// ============================================================================

package logging

import (
	mdwlog "github.com/msto63/exprfront/foundation/core/log"
)

// Logger takes alternating key/value pairs instead of mdwlog.Fields. The
// embedded foundation logger stays reachable for code that needs it, such
// as the parser engine.
type Logger struct {
	*mdwlog.Logger
}

// New creates a logger with the default configuration
func New(name string) *Logger {
	return &Logger{Logger: NewLogger(DefaultLoggerConfig(name))}
}

// Wrap names an existing foundation logger and adapts it
func Wrap(name string, logger *mdwlog.Logger) *Logger {
	return &Logger{Logger: logger.WithName(name)}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues))
}

// Info logs at info level
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues))
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues))
}

// Error logs at error level
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues))
}

// toFields pairs up keys and values. Pairs with a non-string key and a
// trailing key without value are dropped.
func toFields(kv []interface{}) mdwlog.Fields {
	if len(kv) < 2 {
		return nil
	}
	fields := make(mdwlog.Fields, len(kv)/2)
	for i := 1; i < len(kv); i += 2 {
		if key, ok := kv[i-1].(string); ok {
			fields[key] = kv[i]
		}
	}
	return fields
}
