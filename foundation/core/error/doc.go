// Package error provides structured error values for the exprfront toolchain.
//
// Package: error
// Title: exprfront Error Handling
// Description: Structured errors carrying a code, a severity, free-form details
//
//	and an optional cause. Scanner and parser diagnostics are
//	converted into these values when they leave the language core,
//	and the CLI and parse service map the codes to exit statuses
//	and gRPC status codes.
//
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-07-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-06-02 v0.2.0: Reduced code table to the expression front end
// - 2025-07-14 v0.3.0: Severity follows the code
//
// Usage:
//
//	import mdwerror "github.com/msto63/exprfront/foundation/core/error"
//
//	err := mdwerror.New("unexpected token ';'").
//		WithCode(mdwerror.CodeSyntax).
//		WithDetail("line", 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//		// report and keep going
//	}
package error
