// File: lexer.go
// Title: Expression Language Lexical Analyzer
// Description: Pull tokenizer. Skips whitespace and line comments, scans
//              one token per call and reports malformed input as
//              *ScanError values while always advancing the cursor.
// Author: msto63
// Version: v0.1.1
// Created: 2025-06-02
// Modified: 2025-07-14
//
// Change History:
// - 2025-06-02 v0.1.0: Initial lexer implementation
// - 2025-07-14 v0.1.1: Out-of-range numbers keep their token

package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ScanError reports source text that starts no valid token
type ScanError struct {
	Message  string
	Text     string // offending source text
	Position int
	Line     int
	Column   int
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Lexer converts source text into tokens
type Lexer struct {
	input  string
	pos    int // offset of the next unread byte
	line   int
	column int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// HasNext reports whether any source other than whitespace and comments
// remains. It does not move the cursor.
func (l *Lexer) HasNext() bool {
	ahead := *l
	ahead.skipWhitespace()
	return ahead.pos < len(ahead.input)
}

// Offset returns the byte offset just past the last consumed character
func (l *Lexer) Offset() int {
	return l.pos
}

// NextToken scans the next token. At the end of input it returns a
// TokenNone token and a nil error. A number beyond float64 range comes
// back as a usable token clamped to math.MaxFloat64 together with a
// *ScanError; every other error carries a TokenNone token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	start := l.mark()
	if l.pos >= len(l.input) {
		return start.token(TokenNone, ""), nil
	}

	r := l.peek()
	if tt, ok := punctuation[r]; ok {
		l.advance()
		return start.token(tt, string(r)), nil
	}

	switch {
	case r == '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return start.token(TokenConditional, "=="), nil
		}
		return start.token(TokenEqual, "="), nil
	case r == '<' || r == '>':
		l.advance()
		op := string(r)
		if l.peek() == '=' {
			l.advance()
			op += "="
		}
		return start.token(operatorTier[op], op), nil
	case r == '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return start.token(TokenConditional, "!="), nil
		}
		return Token{}, start.fail("unexpected character '!', did you mean '!='", "!")
	case r == '&' || r == '|':
		l.advance()
		if l.peek() == r {
			l.advance()
			op := string([]rune{r, r})
			return start.token(TokenConditional, op), nil
		}
		return Token{}, start.fail(fmt.Sprintf("unexpected character '%c', did you mean '%c%c'", r, r, r), string(r))
	case r == '"' || r == '\'':
		return l.readString(start)
	case isLetter(r):
		return l.readName(start), nil
	case isDigit(r):
		return l.readNumber(start)
	}

	l.advance()
	if tier, ok := operatorTier[string(r)]; ok {
		return start.token(tier, string(r)), nil
	}
	return Token{}, start.fail(fmt.Sprintf("unexpected character %q", r), string(r))
}

// Tokenize drains the lexer. The returned tokens end with a TokenNone token.
func (l *Lexer) Tokenize() ([]Token, []error) {
	var tokens []Token
	var errs []error
	for {
		tok, err := l.NextToken()
		if err != nil {
			errs = append(errs, err)
			if tok.Type == TokenNone {
				continue
			}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenNone {
			return tokens, errs
		}
	}
}

// TokenizeInput tokenizes a complete input string
func TokenizeInput(input string) ([]Token, []error) {
	return NewLexer(input).Tokenize()
}

type mark struct {
	lexer  *Lexer
	pos    int
	line   int
	column int
}

func (l *Lexer) mark() mark {
	return mark{lexer: l, pos: l.pos, line: l.line, column: l.column}
}

func (m mark) token(tt TokenType, value string) Token {
	return Token{Type: tt, Value: value, Position: m.pos, Line: m.line, Column: m.column}
}

func (m mark) text() string {
	return m.lexer.input[m.pos:m.lexer.pos]
}

func (m mark) fail(message, text string) *ScanError {
	return &ScanError{Message: message, Text: text, Position: m.pos, Line: m.line, Column: m.column}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) peekSecond() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.pos:])
	if l.pos+w >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+w:])
	return r
}

func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekSecond() == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readName(start mark) Token {
	for !l.atEnd() && (isLetter(l.peek()) || isDigit(l.peek())) {
		l.advance()
	}
	text := start.text()
	switch text {
	case "true", "false":
		tok := start.token(TokenBoolean, text)
		tok.Bool = text == "true"
		return tok
	}
	return start.token(TokenName, text)
}

func (l *Lexer) readNumber(start mark) (Token, error) {
	dots := 0
	for !l.atEnd() {
		r := l.peek()
		if r == '.' {
			dots++
		} else if !isDigit(r) {
			break
		}
		l.advance()
	}

	text := start.text()
	if dots > 1 {
		return Token{}, start.fail(fmt.Sprintf("malformed number %q", text), text)
	}
	value, err := strconv.ParseFloat(text, 64)
	if errors.Is(err, strconv.ErrRange) {
		tok := start.token(TokenNumber, text)
		tok.Number = math.MaxFloat64
		return tok, start.fail(fmt.Sprintf("number out of range %q", text), text)
	}
	if err != nil {
		return Token{}, start.fail(fmt.Sprintf("malformed number %q", text), text)
	}
	tok := start.token(TokenNumber, text)
	tok.Number = value
	return tok, nil
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

func (l *Lexer) readString(start mark) (Token, error) {
	quote := l.advance()
	var b strings.Builder
	for {
		if l.atEnd() {
			return Token{}, start.fail("unterminated string", start.text())
		}
		r := l.advance()
		switch r {
		case quote:
			return start.token(TokenString, b.String()), nil
		case '\\':
			if l.atEnd() {
				return Token{}, start.fail("unterminated string", start.text())
			}
			next := l.advance()
			if decoded, ok := escapes[next]; ok {
				b.WriteRune(decoded)
			} else {
				b.WriteRune('\\')
				b.WriteRune(next)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
