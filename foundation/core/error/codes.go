// File: codes.go
// Title: Error Codes
// Description: Codes used across the expression front end. The parse
//              service maps them to gRPC status codes and each code carries
//              a default severity.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-06-02 v0.2.0: Replaced service codes with scanner/parser codes
// - 2025-07-14 v0.3.0: Default severity per code, dropped categories

package error

// Code classifies an error
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Problems in source text, reported as diagnostics
	CodeScan          Code = "SCAN_ERROR"
	CodeSyntax        Code = "SYNTAX_ERROR"
	CodeUnexpectedEOF Code = "UNEXPECTED_EOF"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"

	CodeConfigError        Code = "CONFIG_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

var codeSeverity = map[Code]Severity{
	CodeScan:               SeverityLow,
	CodeSyntax:             SeverityLow,
	CodeUnexpectedEOF:      SeverityLow,
	CodeInvalidInput:       SeverityMedium,
	CodeInputTooLarge:      SeverityMedium,
	CodeTimeout:            SeverityMedium,
	CodeConfigError:        SeverityHigh,
	CodeServiceUnavailable: SeverityHigh,
	CodeInternal:           SeverityHigh,
}

// String returns the code text
func (c Code) String() string {
	return string(c)
}

// Severity returns the severity errors with this code get by default;
// unlisted codes are medium
func (c Code) Severity() Severity {
	if s, ok := codeSeverity[c]; ok {
		return s
	}
	return SeverityMedium
}
