// File: level.go
// Title: Log Levels
// Description: Minimum-level filtering for log output and parsing of level
//              names from configuration and command line flags.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-06-02 v0.2.0: Removed fatal level, the CLI reports and exits itself
// - 2025-07-14 v0.3.0: Table driven names, dropped the audit level

package log

import (
	"fmt"
	"strings"
)

// Level is the importance of a log message. Higher is more important.
type Level int

const (
	// LevelTrace logs every token the scanner produces
	LevelTrace Level = iota
	// LevelDebug logs diagnostics and per-statement progress
	LevelDebug
	// LevelInfo is the default
	LevelInfo
	LevelWarn
	// LevelError is reserved for failures of the tool itself
	LevelError

	levelOff
)

var levelNames = [levelOff]struct {
	name, abbrev, ansi string
}{
	LevelTrace: {"trace", "TRC", "\033[37m"},
	LevelDebug: {"debug", "DBG", "\033[36m"},
	LevelInfo:  {"info", "INF", "\033[32m"},
	LevelWarn:  {"warn", "WRN", "\033[33m"},
	LevelError: {"error", "ERR", "\033[31m"},
}

var levelAliases = map[string]Level{
	"trace": LevelTrace, "trc": LevelTrace,
	"debug": LevelDebug, "dbg": LevelDebug,
	"info": LevelInfo, "inf": LevelInfo, "": LevelInfo,
	"warn": LevelWarn, "wrn": LevelWarn, "warning": LevelWarn,
	"error": LevelError, "err": LevelError,
}

func (l Level) known() bool {
	return l >= LevelTrace && l < levelOff
}

// String returns the lower case level name
func (l Level) String() string {
	if !l.known() {
		return "unknown"
	}
	return levelNames[l].name
}

// Abbrev returns the three letter name used by the text formats
func (l Level) Abbrev() string {
	if !l.known() {
		return "???"
	}
	return levelNames[l].abbrev
}

func (l Level) ansi() string {
	if !l.known() {
		return ansiReset
	}
	return levelNames[l].ansi
}

// ParseLevel accepts level names and their three letter forms in any case.
// Unknown names yield LevelInfo and an error.
func ParseLevel(s string) (Level, error) {
	if level, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}
