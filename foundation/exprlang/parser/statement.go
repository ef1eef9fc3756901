// File: statement.go
// Title: Statement Dispatch
// Description: Pulls one top-level statement at a time. Declarations start
//              with let, assignments and calls start with a name. Every
//              statement ends with a semicolon. Failed statements are
//              skipped up to the next semicolon so parsing can continue.
// Author: msto63
// Version: v0.1.1
// Created: 2025-06-02
// Modified: 2025-07-14
//
// Change History:
// - 2025-06-02 v0.1.0: Initial statement dispatch
// - 2025-07-14 v0.1.1: Document where skipped-token diagnostics land

package parser

import (
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// Outcome classifies the result of one Next call
type Outcome int

const (
	// OutcomeStatement means Node holds a parsed statement. Diagnostics
	// may still be present for recoverable problems inside it.
	OutcomeStatement Outcome = iota

	// OutcomeEnd means the input is exhausted and nothing was reported
	OutcomeEnd

	// OutcomeFailed means source was consumed without producing a node
	OutcomeFailed
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeStatement:
		return "statement"
	case OutcomeEnd:
		return "end"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Next call
type Result struct {
	Node    mdwast.Expr
	Outcome Outcome

	// Diagnostics holds everything recorded since the previous result.
	// Tokens that cannot start a statement are reported and skipped one by
	// one before dispatch, so their diagnostics ride on the statement that
	// follows them: for "fn(); x = 1;" the x = 1 statement carries three.
	// Scan errors in front of a statement are attributed the same way.
	Diagnostics Diagnostics
}

// Next parses the next top-level statement
func (p *Parser) Next() Result {
	p.sync()

	for {
		tok := p.current
		switch {
		case tok.Type == TokenNone:
			if p.reported < len(p.diagnostics) {
				return p.result(nil, OutcomeFailed)
			}
			return Result{Outcome: OutcomeEnd}

		case tok.Type == TokenSemiColon:
			p.advance()

		case tok.IsName(KeywordLet):
			checkpoint := p.mark()
			decl := p.parseDeclaration()
			if decl == nil {
				return p.fail()
			}
			return p.finish(decl, checkpoint)

		case tok.Type == TokenName && !IsKeyword(tok.Value):
			checkpoint := p.mark()
			stmt := p.parseStatement()
			if stmt == nil {
				return p.fail()
			}
			return p.finish(stmt, checkpoint)

		default:
			p.syntaxError(tok, "unexpected token %s", tok.Describe())
			p.advance()
		}
	}
}

// parseStatement parses an assignment or a call after a leading name
func (p *Parser) parseStatement() mdwast.Expr {
	name := p.current
	p.advance()

	switch p.current.Type {
	case TokenOpenBracket:
		call := p.parseCall(name)
		if call == nil {
			return nil
		}
		return call

	case TokenEqual:
		p.advance()
		checkpoint := p.mark()
		value := p.parseExpression()
		if value == nil {
			if p.quiet(checkpoint) {
				p.syntaxError(p.current, "missing expression after '=' in assignment to %s, found %s",
					name.Value, p.current.Describe())
			}
			return nil
		}
		return &mdwast.AssignmentExpr{Variable: name.Value, Value: value, Pos: name.Pos()}

	default:
		p.syntaxError(p.current, "expected '(' or '=' after %s, found %s", name.Value, p.current.Describe())
		return nil
	}
}

// finish checks the statement terminator. A missing semicolon is reported
// only when the statement itself was clean; otherwise the rest of the
// statement is skipped silently.
func (p *Parser) finish(node mdwast.Expr, checkpoint int) Result {
	switch {
	case p.current.Type == TokenSemiColon:
		p.pendingAdvance = true
	case p.quiet(checkpoint):
		p.syntaxError(p.current, "expected ';' after statement, found %s", p.current.Describe())
	default:
		p.resync()
	}
	return p.result(node, OutcomeStatement)
}

func (p *Parser) fail() Result {
	p.resync()
	return p.result(nil, OutcomeFailed)
}

// resync skips to the end of the current statement. A semicolon is
// consumed, a let keyword is left for the next statement.
func (p *Parser) resync() {
	for {
		switch {
		case p.current.Type == TokenNone, p.current.IsName(KeywordLet):
			return
		case p.current.Type == TokenSemiColon:
			p.pendingAdvance = true
			return
		}
		p.advance()
	}
}

func (p *Parser) result(node mdwast.Expr, outcome Outcome) Result {
	res := Result{
		Node:        node,
		Outcome:     outcome,
		Diagnostics: append(Diagnostics(nil), p.diagnostics[p.reported:]...),
	}
	p.reported = len(p.diagnostics)
	return res
}
