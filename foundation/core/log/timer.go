// File: timer.go
// Title: Operation Timer
// Description: Measures one operation and logs a completion record with
//              its duration when stopped.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-06-02 v0.2.0: Trimmed to Stop, StopWithError and StopWithResult
// - 2025-07-14 v0.3.0: Started only through Logger.StartTimer

package log

import (
	"time"
)

// Timer logs "<operation> completed" or "<operation> failed" with an
// operation and a duration_ms field. Only the first Stop call logs.
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	level     Level
	fields    Fields
	done      bool
}

// WithField adds a field to the completion record
func (t *Timer) WithField(key string, value interface{}) *Timer {
	if t.fields == nil {
		t.fields = make(Fields)
	}
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// IsRunning reports whether Stop has not been called yet
func (t *Timer) IsRunning() bool {
	return !t.done
}

// Stop logs at debug level and returns the elapsed time, or 0 when the
// timer was already stopped
func (t *Timer) Stop() time.Duration {
	return t.stop(t.level, " completed", nil, nil)
}

// StopWithError logs err at error level
func (t *Timer) StopWithError(err error) time.Duration {
	return t.stop(LevelError, " failed", err, Fields{"success": false})
}

// StopWithResult logs result. An unsuccessful run is logged at warn level
// at least.
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	level, suffix := t.level, " completed"
	if !success {
		suffix = " completed with errors"
		if level < LevelWarn {
			level = LevelWarn
		}
	}
	extra := Fields{"success": success}
	if result != nil {
		extra["result"] = result
	}
	return t.stop(level, suffix, nil, extra)
}

func (t *Timer) stop(level Level, suffix string, err error, extra Fields) time.Duration {
	if t.done {
		return 0
	}
	t.done = true
	elapsed := t.Elapsed()

	fields := t.fields.Clone()
	if fields == nil {
		fields = make(Fields, len(extra)+2)
	}
	for k, v := range extra {
		fields[k] = v
	}
	fields["operation"] = t.operation
	fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	t.logger.emit(level, t.operation+suffix, err, []Fields{fields})
	return elapsed
}
