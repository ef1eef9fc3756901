// File: severity.go
// Title: Error Severity
// Description: Separates problems in source text from rejected requests and
//              from failures of the tool itself.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-06-02 v0.2.0: Severity derived from front end codes
// - 2025-07-14 v0.3.0: Dropped the critical level

package error

// Severity ranks how serious an error is
type Severity int

const (
	// SeverityLow marks problems in user supplied source text
	SeverityLow Severity = iota
	// SeverityMedium marks rejected requests
	SeverityMedium
	// SeverityHigh marks failures of the tool or its configuration
	SeverityHigh
)

var severityNames = []string{"low", "medium", "high"}

// String returns the lower case severity name
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}
