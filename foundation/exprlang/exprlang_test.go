// File: exprlang_test.go
// Title: Expression Language Engine Tests
// Description: Tests for whole-source parsing, cancellation, size limits
//              and program encoding.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial engine tests

package exprlang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	mdwparser "github.com/msto63/exprfront/foundation/exprlang/parser"
)

func newTestEngine() *Engine {
	return NewEngine(Options{Logger: mdwlog.Discard()})
}

func TestParseAll(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		wantStatements []string
		wantDiags      int
		wantFailed     int
	}{
		{
			name:           "clean program",
			source:         "let x: number = 5;\nlet y = x * 2;\nprint(value: y);",
			wantStatements: []string{"let x: number = 5", "let y: dynamic = (x * 2)", "print(value: y)"},
		},
		{
			name:           "recovers after bad declaration",
			source:         "let 5 = x; let z = 1;",
			wantStatements: []string{"let z: dynamic = 1"},
			wantDiags:      1,
			wantFailed:     1,
		},
		{
			name:           "missing terminator keeps statement",
			source:         "let x = 5",
			wantStatements: []string{"let x: dynamic = 5"},
			wantDiags:      1,
		},
		{
			name:       "only scan errors",
			source:     "@@",
			wantDiags:  2,
			wantFailed: 1,
		},
		{
			name: "empty source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := newTestEngine().ParseAll(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("ParseAll() error = %v", err)
			}

			var got []string
			for _, stmt := range prog.Statements {
				got = append(got, stmt.String())
			}
			if strings.Join(got, "|") != strings.Join(tt.wantStatements, "|") {
				t.Errorf("statements = %v, want %v", got, tt.wantStatements)
			}
			if len(prog.Diagnostics) != tt.wantDiags {
				t.Errorf("diagnostics = %v, want %d", prog.Diagnostics.Strings(), tt.wantDiags)
			}
			if prog.Failed != tt.wantFailed {
				t.Errorf("Failed = %d, want %d", prog.Failed, tt.wantFailed)
			}
			if prog.RequestID == "" {
				t.Error("RequestID is empty")
			}
			if (prog.Err() != nil) != (tt.wantDiags > 0) {
				t.Errorf("Err() = %v", prog.Err())
			}
		})
	}
}

func TestParseAllRequestIDsDiffer(t *testing.T) {
	e := newTestEngine()
	a, _ := e.ParseAll(context.Background(), "x = 1;")
	b, _ := e.ParseAll(context.Background(), "x = 1;")
	if a.RequestID == b.RequestID {
		t.Errorf("request IDs should differ, both %s", a.RequestID)
	}
}

func TestParseAllRequestIDFromContext(t *testing.T) {
	e := newTestEngine()

	ctx := WithRequestID(context.Background(), "req-from-caller")
	prog, err := e.ParseAll(ctx, "x = 1;")
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if prog.RequestID != "req-from-caller" {
		t.Errorf("RequestID = %q, want req-from-caller", prog.RequestID)
	}

	if WithRequestID(context.Background(), "") != context.Background() {
		t.Error("WithRequestID with an empty id should return ctx unchanged")
	}
	if id := RequestIDFor(context.Background()); len(id) != 36 {
		t.Errorf("RequestIDFor() = %q, want a generated UUID", id)
	}
}

func TestParseAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().ParseAll(ctx, "x = 1;")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeTimeout) {
		t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeTimeout)
	}
}

func TestParseAllInputTooLarge(t *testing.T) {
	e := NewEngine(Options{Logger: mdwlog.Discard(), MaxInputLength: 8})

	_, err := e.ParseAll(context.Background(), "let x = 12345;")
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		t.Errorf("ParseAll() error = %v, want input too large", err)
	}

	_, _, err = e.Tokenize("let x = 12345;")
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		t.Errorf("Tokenize() error = %v, want input too large", err)
	}
}

func TestTokenize(t *testing.T) {
	tokens, errs, err := newTestEngine().Tokenize("x = 1 ! 2;")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(errs) != 1 {
		t.Errorf("scan errors = %v, want 1", errs)
	}
	if last := tokens[len(tokens)-1]; last.Type != mdwparser.TokenNone {
		t.Errorf("last token = %v, want None", last)
	}
}

func TestProgramErr(t *testing.T) {
	prog, err := newTestEngine().ParseAll(context.Background(), "x = ;\ny = ;")
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	perr := prog.Err()
	var structured *mdwerror.Error
	if !errors.As(perr, &structured) {
		t.Fatalf("Err() = %T, want *mdwerror.Error", perr)
	}
	if structured.Code() != mdwerror.CodeSyntax {
		t.Errorf("Code() = %v", structured.Code())
	}
	if structured.Details()["diagnostics"] != 2 {
		t.Errorf("Details() = %v", structured.Details())
	}
	if structured.RequestID() != prog.RequestID {
		t.Errorf("RequestID() = %q, want %q", structured.RequestID(), prog.RequestID)
	}
}

func TestProgramToMap(t *testing.T) {
	prog, err := newTestEngine().ParseAll(context.Background(), "f(a, b: 2); let 5 = x;")
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	m := prog.ToMap()
	statements := m["statements"].([]interface{})
	if len(statements) != 1 {
		t.Fatalf("statements = %v", statements)
	}
	call := statements[0].(map[string]interface{})
	if call["kind"] != "call" || call["callee"] != "f" {
		t.Errorf("statement = %v", call)
	}

	if rendered := m["rendered"].([]interface{}); rendered[0] != "f(a: a, b: 2)" {
		t.Errorf("rendered = %v", rendered)
	}

	diags := m["diagnostics"].([]interface{})
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}
	d := diags[0].(map[string]interface{})
	if d["kind"] != "syntax" || d["code"] != "SYNTAX_ERROR" || d["column"] != float64(17) {
		t.Errorf("diagnostic = %v", d)
	}
	if m["failed"] != float64(1) {
		t.Errorf("failed = %v", m["failed"])
	}

	if _, err := json.Marshal(m); err != nil {
		t.Errorf("program map does not marshal: %v", err)
	}
}

func TestParseAllLogsTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatJSON, Output: &buf})

	prog, err := NewEngine(Options{Logger: logger}).ParseAll(context.Background(), "x = 1;")
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if last["message"] != "parse completed" {
		t.Errorf("message = %v", last["message"])
	}
	if last["request_id"] != prog.RequestID {
		t.Errorf("request_id = %v, want %s", last["request_id"], prog.RequestID)
	}
	if last["statements"] != float64(1) || last["component"] != "exprlang-engine" {
		t.Errorf("fields = %v", last)
	}
}

func TestTokenStreamMap(t *testing.T) {
	tokens, errs, err := newTestEngine().Tokenize("x = 2 # true;")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	m := TokenStreamMap(tokens, errs)
	encoded := m["tokens"].([]interface{})
	if len(encoded) != len(tokens) {
		t.Fatalf("tokens = %d, want %d", len(encoded), len(tokens))
	}

	tests := []struct {
		index     int
		wantType  string
		wantValue interface{}
	}{
		{0, "Name", "x"},
		{1, "Equal", "="},
		{2, "Number", float64(2)},
		{3, "Boolean", true},
	}
	for _, tt := range tests {
		tok := encoded[tt.index].(map[string]interface{})
		if tok["type"] != tt.wantType || tok["value"] != tt.wantValue {
			t.Errorf("token %d = %v, want %s %v", tt.index, tok, tt.wantType, tt.wantValue)
		}
	}

	scanErrors := m["scan_errors"].([]interface{})
	if len(scanErrors) != 1 {
		t.Fatalf("scan_errors = %v", scanErrors)
	}
	if se := scanErrors[0].(map[string]interface{}); se["text"] != "#" || se["column"] != float64(7) {
		t.Errorf("scan error = %v", se)
	}

	if _, err := json.Marshal(m); err != nil {
		t.Errorf("token stream map does not marshal: %v", err)
	}
}
