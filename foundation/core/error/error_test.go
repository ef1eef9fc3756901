// File: error_test.go
// Title: Error Module Tests
// Description: Tests for construction, wrapping, code lookup through
//              chains, severities and JSON encoding.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2025-06-02 v0.2.0: Front end codes
// - 2025-07-14 v0.3.0: Severity per code

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{"New", New("unexpected token"), "unexpected token"},
		{"Newf", Newf("expected %s, found %s", "Name", "Number"), "expected Name, found Number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg || tt.err.Message() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
			if tt.err.Code() != CodeUnknown || tt.err.Severity() != SeverityMedium {
				t.Errorf("code/severity = %v/%v", tt.err.Code(), tt.err.Severity())
			}
			stack := tt.err.StackTrace()
			if len(stack) == 0 || !strings.Contains(stack[0].Function, "TestConstructors") {
				t.Errorf("stack should start at the caller, got %+v", stack)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode Code
		wantSev  Severity
	}{
		{"standard error", errors.New("file not found"), "reading source: file not found", CodeUnknown, SeverityMedium},
		{"structured error", New("bad token").WithCode(CodeScan), "reading source: bad token", CodeScan, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, "reading source")
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode || got.Severity() != tt.wantSev {
				t.Errorf("code/severity = %v/%v", got.Code(), got.Severity())
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is should find the wrapped cause")
			}
		})
	}

	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWrapInheritsContext(t *testing.T) {
	inner := New("bad").WithCode(CodeSyntax).WithDetail("line", 3).WithRequestID("req-4")
	outer := Wrap(inner, "parsing").WithDetail("source", "inline")

	if outer.Details()["line"] != 3 || outer.Details()["source"] != "inline" {
		t.Errorf("Details() = %v", outer.Details())
	}
	if outer.RequestID() != "req-4" {
		t.Errorf("RequestID() = %q", outer.RequestID())
	}
	if _, ok := inner.Details()["source"]; ok {
		t.Error("wrapping should not add details to the inner error")
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeScan, SeverityLow},
		{CodeSyntax, SeverityLow},
		{CodeUnexpectedEOF, SeverityLow},
		{CodeInputTooLarge, SeverityMedium},
		{CodeTimeout, SeverityMedium},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityHigh},
		{CodeUnknown, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := New("x").WithCode(tt.code).Severity(); got != tt.want {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	base := New("bad").WithCode(CodeSyntax)
	chained := fmt.Errorf("outer: %w", Wrap(base, "middle").WithCode(CodeInvalidInput))

	tests := []struct {
		code Code
		want bool
	}{
		{CodeSyntax, true},
		{CodeInvalidInput, true},
		{CodeConfigError, false},
	}
	for _, tt := range tests {
		if got := HasCode(chained, tt.code); got != tt.want {
			t.Errorf("HasCode(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if GetCode(chained) != CodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", GetCode(chained), CodeInvalidInput)
	}
	if GetCode(errors.New("plain")) != CodeUnknown || HasCode(errors.New("plain"), CodeUnknown) {
		t.Error("plain errors carry no code")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "unexpected token").
		WithCode(CodeSyntax).
		WithDetail("line", 2).
		WithOperation("parse").
		WithRequestID("req-1")

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Marshal() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("Unmarshal() error = %v", jsonErr)
	}

	want := map[string]interface{}{
		"message":    "unexpected token",
		"code":       "SYNTAX_ERROR",
		"severity":   "low",
		"operation":  "parse",
		"request_id": "req-1",
		"cause":      "eof",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %v, want %v", k, decoded[k], v)
		}
	}
	details, ok := decoded["details"].(map[string]interface{})
	if !ok || details["line"] != float64(2) {
		t.Errorf("details = %v", decoded["details"])
	}
	if _, ok := decoded["stack_trace"].([]interface{}); !ok {
		t.Errorf("stack_trace = %v", decoded["stack_trace"])
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{Severity(42), "unknown"},
		{Severity(-1), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
