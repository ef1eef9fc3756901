// File: diagnostic.go
// Title: Parser Diagnostics
// Description: Diagnostic records accumulated by the parser for scan and
//              syntax errors, and their conversion into structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial diagnostics

package parser

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
)

// DiagnosticKind separates tokenizer problems from grammar problems
type DiagnosticKind int

const (
	// DiagnosticScan is reported when the tokenizer rejects source text
	DiagnosticScan DiagnosticKind = iota

	// DiagnosticSyntax is reported when a token cannot continue the
	// current construct
	DiagnosticSyntax
)

// String returns the kind name used in rendered diagnostics
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticScan:
		return "scan"
	case DiagnosticSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// Diagnostic is one entry of the parser's append-only error log
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Line    int
	Column  int
	Offset  int
	// AtEnd is set when the input ended inside a construct
	AtEnd bool
}

// String renders the diagnostic as line:column: kind error: message
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s error: %s", d.Line, d.Column, d.Kind, d.Message)
}

// Code returns the structured error code for the diagnostic
func (d Diagnostic) Code() mdwerror.Code {
	switch {
	case d.Kind == DiagnosticScan:
		return mdwerror.CodeScan
	case d.AtEnd:
		return mdwerror.CodeUnexpectedEOF
	default:
		return mdwerror.CodeSyntax
	}
}

// Err converts the diagnostic into a structured error
func (d Diagnostic) Err() *mdwerror.Error {
	return mdwerror.New(d.Message).
		WithCode(d.Code()).
		WithOperation("parse").
		WithDetail("line", d.Line).
		WithDetail("column", d.Column).
		WithDetail("offset", d.Offset)
}

func scanDiagnostic(err error) Diagnostic {
	if se, ok := err.(*ScanError); ok {
		return Diagnostic{
			Kind:    DiagnosticScan,
			Message: se.Message,
			Line:    se.Line,
			Column:  se.Column,
			Offset:  se.Position,
		}
	}
	return Diagnostic{Kind: DiagnosticScan, Message: err.Error()}
}

// Diagnostics is an ordered list of diagnostics
type Diagnostics []Diagnostic

// Error joins all diagnostics, one per line
func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Strings renders every diagnostic
func (ds Diagnostics) Strings() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// Count returns the number of diagnostics of the given kind
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
