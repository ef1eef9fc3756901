// File: token.go
// Title: Token Definitions
// Description: Token types, the token value and the constant operator and
//              punctuation tables used by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial token model

package parser

import (
	"fmt"
	"strconv"

	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// TokenNone signals that no more tokens are available
	TokenNone TokenType = iota

	// Identifiers and literals
	TokenName    // x, total, let
	TokenNumber  // 5, 2.5
	TokenString  // "text", 'text'
	TokenBoolean // true, false

	// Operator tiers, loosest binding first
	TokenConditional // == != < <= > >= && ||
	TokenTerm        // + -
	TokenFactor      // * / %

	// Punctuation
	TokenOpenBracket         // (
	TokenClosingBracket      // )
	TokenOpenCurlyBracket    // {
	TokenClosingCurlyBracket // }
	TokenColon               // :
	TokenComma               // ,
	TokenEqual               // =
	TokenSemiColon           // ;
)

var tokenTypeNames = map[TokenType]string{
	TokenNone:                "None",
	TokenName:                "Name",
	TokenNumber:              "Number",
	TokenString:              "String",
	TokenBoolean:             "Boolean",
	TokenConditional:         "Conditional",
	TokenTerm:                "Term",
	TokenFactor:              "Factor",
	TokenOpenBracket:         "OpenBracket",
	TokenClosingBracket:      "ClosingBracket",
	TokenOpenCurlyBracket:    "OpenCurlyBracket",
	TokenClosingCurlyBracket: "ClosingCurlyBracket",
	TokenColon:               "Colon",
	TokenComma:               "Comma",
	TokenEqual:               "Equal",
	TokenSemiColon:           "SemiColon",
}

// String returns the name of the token type
func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsOperator reports whether tt is one of the three operator tiers
func (tt TokenType) IsOperator() bool {
	return tt == TokenConditional || tt == TokenTerm || tt == TokenFactor
}

// punctuation maps single characters to their token type
var punctuation = map[rune]TokenType{
	'(': TokenOpenBracket,
	')': TokenClosingBracket,
	'{': TokenOpenCurlyBracket,
	'}': TokenClosingCurlyBracket,
	':': TokenColon,
	',': TokenComma,
	';': TokenSemiColon,
}

// operatorTier classifies every operator spelling into its precedence tier
var operatorTier = map[string]TokenType{
	"==": TokenConditional,
	"!=": TokenConditional,
	"<":  TokenConditional,
	"<=": TokenConditional,
	">":  TokenConditional,
	">=": TokenConditional,
	"&&": TokenConditional,
	"||": TokenConditional,
	"+":  TokenTerm,
	"-":  TokenTerm,
	"*":  TokenFactor,
	"/":  TokenFactor,
	"%":  TokenFactor,
}

// OperatorTier returns the tier of an operator spelling
func OperatorTier(op string) (TokenType, bool) {
	tier, ok := operatorTier[op]
	return tier, ok
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string  // identifier, operator or decoded string text
	Number   float64 // TokenNumber only
	Bool     bool    // TokenBoolean only
	Position int     // byte offset of the first character
	Line     int
	Column   int
}

// Pos returns the token position as a syntax tree position
func (t Token) Pos() mdwast.Position {
	return mdwast.Position{Line: t.Line, Column: t.Column, Offset: t.Position}
}

// Is reports whether the token has the given type
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsName reports whether the token is the identifier name
func (t Token) IsName(name string) bool {
	return t.Type == TokenName && t.Value == name
}

// String renders the token as Type(value)
func (t Token) String() string {
	switch t.Type {
	case TokenName, TokenConditional, TokenTerm, TokenFactor:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	case TokenNumber:
		return fmt.Sprintf("%s(%s)", t.Type, mdwast.FormatNumber(t.Number))
	case TokenString:
		return fmt.Sprintf("%s(%s)", t.Type, strconv.Quote(t.Value))
	case TokenBoolean:
		return fmt.Sprintf("%s(%t)", t.Type, t.Bool)
	default:
		return t.Type.String()
	}
}

// Describe renders the token for diagnostics
func (t Token) Describe() string {
	switch t.Type {
	case TokenNone:
		return "end of input"
	case TokenName:
		return fmt.Sprintf("name '%s'", t.Value)
	case TokenNumber:
		return "number " + mdwast.FormatNumber(t.Number)
	case TokenString:
		return "string " + strconv.Quote(t.Value)
	case TokenBoolean:
		return "boolean " + strconv.FormatBool(t.Bool)
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}
