// File: format.go
// Title: Log Formats
// Description: Renders records as JSON lines for collectors, as plain or
//              colored text for terminals, or as logfmt pairs. Fields are
//              always written in sorted key order.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2025-06-02 v0.2.0: Sorted field output, caller info in text formats
// - 2025-07-14 v0.3.0: One text formatter for text and console output

package log

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format selects a Formatter
type Format int

const (
	FormatJSON Format = iota
	FormatText
	// FormatConsole is FormatText with ANSI colors per level
	FormatConsole
	FormatLogfmt
)

const ansiReset = "\033[0m"

var formatNames = map[Format]string{
	FormatJSON:    "json",
	FormatText:    "text",
	FormatConsole: "console",
	FormatLogfmt:  "logfmt",
}

// String returns the configuration name of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat resolves a configuration name. The empty name means text;
// unknown names yield FormatText and an error.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatText, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// Formatter renders one record including the trailing newline
type Formatter interface {
	Format(r *Record) ([]byte, error)
}

// NewFormatter returns the formatter for f, JSON for unknown values
func NewFormatter(f Format) Formatter {
	switch f {
	case FormatText:
		return TextFormatter{Clock: "15:04:05"}
	case FormatConsole:
		return TextFormatter{Clock: "15:04:05", Color: true}
	case FormatLogfmt:
		return LogfmtFormatter{}
	default:
		return JSONFormatter{}
	}
}

// JSONFormatter writes one object per line with the fields at top level
type JSONFormatter struct{}

// Format implements Formatter
func (JSONFormatter) Format(r *Record) ([]byte, error) {
	obj := make(map[string]interface{}, len(r.Fields)+7)
	for k, v := range r.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		obj[k] = v
	}
	obj["timestamp"] = r.Time.Format(time.RFC3339)
	obj["level"] = r.Level.String()
	obj["message"] = r.Message
	setIf(obj, "logger", r.Logger)
	setIf(obj, "request_id", r.RequestID)
	setIf(obj, "caller", r.Caller)
	if r.Err != nil {
		obj["error"] = r.Err.Error()
		// structured errors add their code and details
		if m, ok := r.Err.(json.Marshaler); ok {
			if raw, err := m.MarshalJSON(); err == nil {
				obj["error_details"] = json.RawMessage(raw)
			}
		}
	}

	line, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}

func setIf(obj map[string]interface{}, key, value string) {
	if value != "" {
		obj[key] = value
	}
}

// TextFormatter writes "15:04:05 [INF] {logger} (req=id) message [k=v ...]".
// An empty Clock omits the time.
type TextFormatter struct {
	Clock string
	Color bool
}

// Format implements Formatter
func (f TextFormatter) Format(r *Record) ([]byte, error) {
	var b strings.Builder
	if f.Color {
		b.WriteString(r.Level.ansi())
	}
	if f.Clock != "" {
		b.WriteString(r.Time.Format(f.Clock))
		b.WriteByte(' ')
	}
	b.WriteString("[" + r.Level.Abbrev() + "]")
	if r.Logger != "" {
		b.WriteString(" {" + r.Logger + "}")
	}
	if r.RequestID != "" {
		b.WriteString(" (req=" + r.RequestID + ")")
	}
	b.WriteString(" " + r.Message)

	if len(r.Fields) > 0 {
		pairs := make([]string, 0, len(r.Fields))
		for _, k := range r.Fields.Keys() {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, r.Fields[k]))
		}
		b.WriteString(" [" + strings.Join(pairs, " ") + "]")
	}
	if r.Err != nil {
		b.WriteString(" error=" + strconv.Quote(r.Err.Error()))
	}
	if r.Caller != "" {
		b.WriteString(" caller=" + r.Caller)
	}
	if f.Color {
		b.WriteString(ansiReset)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// LogfmtFormatter writes space separated key=value pairs, quoting strings
type LogfmtFormatter struct{}

// Format implements Formatter
func (LogfmtFormatter) Format(r *Record) ([]byte, error) {
	pairs := []string{
		"timestamp=" + r.Time.Format(time.RFC3339),
		"level=" + r.Level.String(),
		"message=" + strconv.Quote(r.Message),
	}
	if r.Logger != "" {
		pairs = append(pairs, "logger="+r.Logger)
	}
	if r.RequestID != "" {
		pairs = append(pairs, "request_id="+r.RequestID)
	}
	for _, k := range r.Fields.Keys() {
		pairs = append(pairs, k+"="+logfmtValue(r.Fields[k]))
	}
	if r.Err != nil {
		pairs = append(pairs, "error="+strconv.Quote(r.Err.Error()))
	}
	if r.Caller != "" {
		pairs = append(pairs, "caller="+r.Caller)
	}
	return []byte(strings.Join(pairs, " ") + "\n"), nil
}

func logfmtValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case error:
		return strconv.Quote(v.Error())
	default:
		return fmt.Sprint(v)
	}
}
