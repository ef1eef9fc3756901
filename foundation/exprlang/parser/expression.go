// File: expression.go
// Title: Expression Parsing
// Description: Precedence climbing over three operator tiers. Each tier
//              parses the next tighter tier and, on an operator of its own
//              tier, recurses into itself for the right operand, so chains
//              within a tier group to the right.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial expression parsing

package parser

import (
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// tighterTier maps each tier to the next tighter binding one
var tighterTier = map[TokenType]TokenType{
	TokenConditional: TokenTerm,
	TokenTerm:        TokenFactor,
}

// parseExpression parses a full expression. It returns nil when no
// expression could be built; any problem other than an empty expression
// has been recorded by then.
func (p *Parser) parseExpression() mdwast.Expr {
	return p.parseTier(TokenConditional)
}

func (p *Parser) parseTier(tier TokenType) mdwast.Expr {
	var left mdwast.Expr
	if tighter, ok := tighterTier[tier]; ok {
		left = p.parseTier(tighter)
	} else {
		left = p.parseValue()
	}
	if left == nil || p.current.Type != tier {
		return left
	}

	op := p.current
	p.advance()

	checkpoint := p.mark()
	right := p.parseTier(tier)
	if right == nil {
		if p.quiet(checkpoint) {
			p.syntaxError(p.current, "missing right operand for '%s', found %s", op.Value, p.current.Describe())
		}
		return nil
	}
	return &mdwast.BinaryExpr{Left: left, Op: op.Value, Right: right, Pos: left.Position()}
}

// atBoundary reports whether tok ends an expression without belonging to it
func atBoundary(tok Token) bool {
	switch tok.Type {
	case TokenNone, TokenSemiColon, TokenClosingBracket, TokenComma, TokenClosingCurlyBracket:
		return true
	}
	return tok.IsName(KeywordLet)
}

// parseValue parses a literal, a variable, a call or a parenthesised
// expression. Other tokens are reported and skipped until a value or a
// boundary is found.
func (p *Parser) parseValue() mdwast.Expr {
	for {
		tok := p.current
		switch tok.Type {
		case TokenNumber:
			p.advance()
			return &mdwast.NumberExpr{Value: tok.Number, Pos: tok.Pos()}
		case TokenString:
			p.advance()
			return &mdwast.StringExpr{Value: tok.Value, Pos: tok.Pos()}
		case TokenBoolean:
			p.advance()
			return &mdwast.BooleanExpr{Value: tok.Bool, Pos: tok.Pos()}
		case TokenName:
			if tok.Value == KeywordLet {
				return nil
			}
			if IsKeyword(tok.Value) {
				p.syntaxError(tok, "expecting a literal, found reserved word '%s'", tok.Value)
				p.advance()
				continue
			}
			p.advance()
			if p.current.Type == TokenOpenBracket {
				call := p.parseCall(tok)
				if call == nil {
					return nil
				}
				return call
			}
			return &mdwast.VariableExpr{Name: tok.Value, Pos: tok.Pos()}
		case TokenOpenBracket:
			return p.parseGroup()
		}

		if atBoundary(tok) {
			return nil
		}
		p.syntaxError(tok, "expecting a literal, found %s", tok.Describe())
		p.advance()
	}
}

// parseGroup parses ( expression ). A missing closing bracket is reported
// and the inner expression is kept.
func (p *Parser) parseGroup() mdwast.Expr {
	open := p.current
	p.advance()

	checkpoint := p.mark()
	inner := p.parseExpression()
	if inner == nil && p.quiet(checkpoint) {
		p.syntaxError(p.current, "expected expression after '(', found %s", p.current.Describe())
	}

	if p.current.Type == TokenClosingBracket {
		p.advance()
	} else if inner != nil {
		p.syntaxError(p.current, "expected ')' to close '(' at %s, found %s", open.Pos(), p.current.Describe())
	}
	return inner
}
