// Package log provides structured logging for the exprfront toolchain.
//
// Package: log
// Title: exprfront Structured Logging
// Description: Leveled logging with contextual fields and request IDs,
//
//	written as JSON, text, colored console text or logfmt. The
//	parser logs diagnostics at debug level and every scanned token at
//	trace level.
//
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-06-02 v0.2.0: Deterministic field order, dropped async buffering
// - 2025-07-14 v0.3.0: Smaller API, Record replaces Entry
//
// Usage:
//
//	import mdwlog "github.com/msto63/exprfront/foundation/core/log"
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatText,
//	}).WithField("component", "exprlang-parser")
//
//	logger.Debug("syntax error", mdwlog.Fields{"line": 1, "column": 5})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
