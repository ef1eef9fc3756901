// File: arguments.go
// Title: Call and Named Argument Parsing
// Description: Parses the argument list of a call with the argument state
//              machine. An argument without a value passes the variable of
//              the same name.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial argument list parsing

package parser

import (
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// parseCall parses name(args) with the lookahead on the opening bracket.
// It returns nil when the list is not terminated by ')'.
func (p *Parser) parseCall(name Token) *mdwast.CallExpr {
	open := p.current
	p.advance()

	call := &mdwast.CallExpr{Callee: name.Value, Pos: name.Pos()}
	state := argAwaitName
	var pending Token

	for {
		tok := p.current
		switch tok.Type {
		case TokenNone:
			p.syntaxError(tok, "unterminated argument list for %s opened at %s",
				call.Callee, open.Pos())
			return nil
		case TokenSemiColon:
			p.syntaxError(tok, "unterminated argument list for %s: expected ')' before ';'", call.Callee)
			return nil
		}

		next, ok := argMachine.next(state, tok.Type)
		if !ok {
			p.syntaxError(tok, "%s, found %s", argMachine.expectation(state), tok.Describe())
			p.advance()
			continue
		}

		switch {
		case state == argAwaitName && tok.Type == TokenName:
			if IsKeyword(tok.Value) {
				p.syntaxError(tok, "reserved word '%s' cannot be used as an argument name", tok.Value)
				p.advance()
				continue
			}
			pending = tok
			p.advance()

		case state == argHaveName && tok.Type == TokenColon:
			p.advance()
			checkpoint := p.mark()
			value := p.parseExpression()
			if value == nil {
				if p.quiet(checkpoint) {
					p.syntaxError(p.current, "missing value for argument %s, found %s",
						pending.Value, p.current.Describe())
				}
			} else {
				call.Args = append(call.Args, &mdwast.ArgumentPassing{
					Name:  pending.Value,
					Value: value,
					Pos:   pending.Pos(),
				})
			}

		case state == argHaveName:
			call.Args = append(call.Args, shorthandArgument(pending))
			p.advance()

		default:
			p.advance()
		}

		if next == argDone {
			return call
		}
		state = next
	}
}

// shorthandArgument expands f(a) into f(a: a)
func shorthandArgument(name Token) *mdwast.ArgumentPassing {
	return &mdwast.ArgumentPassing{
		Name:  name.Value,
		Value: &mdwast.VariableExpr{Name: name.Value, Pos: name.Pos()},
		Pos:   name.Pos(),
	}
}
