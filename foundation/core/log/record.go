// File: record.go
// Title: Log Records
// Description: One log record as handed to a formatter, and the Fields map
//              callers use to attach structured values.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-06-02 v0.2.0: Sorted keys for stable formatter output
// - 2025-07-14 v0.3.0: Renamed to Record, duration moved into fields

package log

import (
	"sort"
	"time"
)

// Fields holds structured values attached to a record
type Fields map[string]interface{}

// Clone returns a shallow copy; nil stays nil
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names sorted
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Record is one log line before formatting
type Record struct {
	Time      time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Err       error

	// Caller is "file.go:line" when caller reporting is on
	Caller string
}
