// File: declaration.go
// Title: Declaration Parsing
// Description: Parses let declarations with the declaration state machine:
//              let name [: type] [= value]. Without a type annotation the
//              declared type is dynamic.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial declaration parsing

package parser

import (
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// parseDeclaration parses a declaration starting at the let keyword. It
// returns nil only when no name could be captured. The terminator is left
// for the caller.
func (p *Parser) parseDeclaration() *mdwast.InitializationExpr {
	start := p.current
	p.advance()

	decl := &mdwast.InitializationExpr{DeclaredType: mdwast.DynamicType, Pos: start.Pos()}
	named := false
	state := declExpectName

	for {
		tok := p.current
		next, ok := declMachine.next(state, tok.Type)
		if !ok {
			p.syntaxError(tok, "%s, found %s", declMachine.expectation(state), tok.Describe())
			if !named {
				return nil
			}
			return decl
		}

		switch state {
		case declExpectName:
			if IsKeyword(tok.Value) {
				p.syntaxError(tok, "reserved word '%s' cannot be used as a variable name", tok.Value)
			}
			decl.Name = tok.Value
			named = true
			p.advance()
		case declExpectType:
			if !IsTypeKeyword(tok.Value) {
				p.syntaxError(tok, "expected Datatype, found unknown type '%s'", tok.Value)
			}
			decl.DeclaredType = tok.Value
			p.advance()
		default:
			// the terminating semicolon belongs to the statement
			if tok.Type != TokenSemiColon {
				p.advance()
			}
		}

		switch next {
		case declDone:
			return decl
		case declValue:
			checkpoint := p.mark()
			value := p.parseExpression()
			if value == nil {
				if p.quiet(checkpoint) {
					p.syntaxError(p.current, "missing value in declaration of %s, found %s",
						decl.Name, p.current.Describe())
				}
				return decl
			}
			decl.Value = value
			return decl
		}
		state = next
	}
}
