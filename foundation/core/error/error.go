// File: error.go
// Title: Structured Errors
// Description: The Error type carries a code, a severity, details and an
//              optional cause together with the stack of its creator.
//              Unwrap keeps it compatible with errors.Is and errors.As.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2025-06-02 v0.2.0: Dropped localization and user context, code lookup via errors.As
// - 2025-07-14 v0.3.0: Severity follows the code, smaller accessor set

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"
)

const maxFrames = 16

// StackFrame is one caller recorded when an Error is created
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Error is a structured error. Its With* methods modify and return the
// receiver so they chain on construction.
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	created   time.Time
	details   map[string]interface{}
	operation string
	requestID string
	stack     []StackFrame
}

// New creates an error with CodeUnknown
func New(message string) *Error {
	return build(message, nil)
}

// Newf creates an error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return build(fmt.Sprintf(format, args...), nil)
}

// Wrap adds message in front of err. A wrapped *Error hands down its code,
// severity, request ID and details. Wrap(nil, ...) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	e := build(message, err)

	var inner *Error
	if errors.As(err, &inner) {
		e.code, e.severity, e.requestID = inner.code, inner.severity, inner.requestID
		for k, v := range inner.details {
			e.details[k] = v
		}
	}
	return e
}

// build is called directly by each constructor so the recorded stack
// starts at the constructor's caller
func build(message string, cause error) *Error {
	return &Error{
		message:  message,
		cause:    cause,
		code:     CodeUnknown,
		severity: SeverityMedium,
		created:  time.Now(),
		details:  make(map[string]interface{}),
		stack:    callers(4),
	}
}

func callers(skip int) []StackFrame {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var stack []StackFrame
	for n > 0 {
		f, more := frames.Next()
		stack = append(stack, StackFrame{Function: f.Function, File: f.File, Line: f.Line})
		if !more {
			break
		}
	}
	return stack
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// WithCode sets the code and the code's default severity
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	e.severity = code.Severity()
	return e
}

// WithDetail records key=value
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithOperation names the operation that failed
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithRequestID ties the error to a request
func (e *Error) WithRequestID(id string) *Error {
	e.requestID = id
	return e
}

// Message returns the message without the cause
func (e *Error) Message() string          { return e.message }
func (e *Error) Code() Code               { return e.code }
func (e *Error) Severity() Severity       { return e.severity }
func (e *Error) Operation() string        { return e.operation }
func (e *Error) RequestID() string        { return e.requestID }
func (e *Error) StackTrace() []StackFrame { return append([]StackFrame(nil), e.stack...) }

// Details returns a copy of the details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// MarshalJSON lets JSON log formatters embed the error with its code and
// details
func (e *Error) MarshalJSON() ([]byte, error) {
	type encoded struct {
		Message   string                 `json:"message"`
		Code      Code                   `json:"code"`
		Severity  string                 `json:"severity"`
		Timestamp string                 `json:"timestamp"`
		Details   map[string]interface{} `json:"details"`
		Operation string                 `json:"operation,omitempty"`
		RequestID string                 `json:"request_id,omitempty"`
		Cause     string                 `json:"cause,omitempty"`
		Stack     []StackFrame           `json:"stack_trace,omitempty"`
	}
	out := encoded{
		Message:   e.message,
		Code:      e.code,
		Severity:  e.severity.String(),
		Timestamp: e.created.Format(time.RFC3339),
		Details:   e.details,
		Operation: e.operation,
		RequestID: e.requestID,
		Stack:     e.stack,
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	return json.Marshal(out)
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.code == code {
			return true
		}
		err = e.cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or
// CodeUnknown when there is none
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}
