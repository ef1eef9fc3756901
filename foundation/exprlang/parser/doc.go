// File: doc.go
// Title: Expression Language Parser Package Documentation
// Description: Tokenizer and recursive descent parser for the expression
//              language. Errors in the source are collected as diagnostics
//              and never abort the parse.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial parser implementation

/*
Package parser provides lexical analysis and parsing for the expression
language.

The Lexer is a pull tokenizer: every NextToken call scans exactly one token
and always advances past at least one character, also when it reports a
*ScanError. The Parser owns a Lexer and one lookahead token and returns one
top-level statement per Next call:

	p := parser.New("let x: number = 2 + 3 * 4; f(a, b: 2);", parser.Options{})
	for {
		res := p.Next()
		if res.Outcome == parser.OutcomeEnd {
			break
		}
		if res.Outcome == parser.OutcomeStatement {
			fmt.Println(res.Node)
		}
	}
	p.ReportErrors(os.Stderr)

Statements are declarations (let name[: type] [= value];), assignments
(name = value;) and calls (name(arg: value, other);). Expressions use three
right-associative operator tiers: conditional operators bind loosest, then
additive terms, then multiplicative factors.
*/
package parser
