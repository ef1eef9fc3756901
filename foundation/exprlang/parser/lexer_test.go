// File: lexer_test.go
// Title: Lexer Tests
// Description: Tests for token classification, literals, positions,
//              comments and scan error recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-07-14
//
// Change History:
// - 2025-06-02 v0.1.0: Initial lexer tests
// - 2025-07-14: Out-of-range numbers

package parser

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerTokenTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "typed declaration",
			input: "let x: number = 5;",
			want:  []TokenType{TokenName, TokenName, TokenColon, TokenName, TokenEqual, TokenNumber, TokenSemiColon, TokenNone},
		},
		{
			name:  "call with named arguments",
			input: "f(a, b: 2)",
			want:  []TokenType{TokenName, TokenOpenBracket, TokenName, TokenComma, TokenName, TokenColon, TokenNumber, TokenClosingBracket, TokenNone},
		},
		{
			name:  "curly brackets",
			input: "{ }",
			want:  []TokenType{TokenOpenCurlyBracket, TokenClosingCurlyBracket, TokenNone},
		},
		{
			name:  "booleans",
			input: "true false truth",
			want:  []TokenType{TokenBoolean, TokenBoolean, TokenName, TokenNone},
		},
		{
			name:  "empty input",
			input: "",
			want:  []TokenType{TokenNone},
		},
		{
			name:  "whitespace only",
			input: " \t\n\r ",
			want:  []TokenType{TokenNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := TokenizeInput(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected scan errors: %v", errs)
			}
			if got := tokenTypes(tokens); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("types = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"==", TokenConditional},
		{"!=", TokenConditional},
		{"<", TokenConditional},
		{"<=", TokenConditional},
		{">", TokenConditional},
		{">=", TokenConditional},
		{"&&", TokenConditional},
		{"||", TokenConditional},
		{"+", TokenTerm},
		{"-", TokenTerm},
		{"*", TokenFactor},
		{"/", TokenFactor},
		{"%", TokenFactor},
		{"=", TokenEqual},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer(tt.input).NextToken()
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Type != tt.want || tok.Value != tt.input {
				t.Errorf("NextToken() = %v %q, want %v %q", tok.Type, tok.Value, tt.want, tt.input)
			}
		})
	}
}

func TestLexerLongestOperatorMatch(t *testing.T) {
	tokens, errs := TokenizeInput("a<=b==c=d")
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}

	var got []string
	for _, tok := range tokens[:len(tokens)-1] {
		got = append(got, tok.Value)
	}
	want := []string{"a", "<=", "b", "==", "c", "=", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"5", 5, false},
		{"3.14", 3.14, false},
		{"007", 7, false},
		{"5.", 5, false},
		{"1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewLexer(tt.input)
			tok, err := l.NextToken()
			if tt.wantErr {
				var se *ScanError
				if !errors.As(err, &se) {
					t.Fatalf("expected *ScanError, got %v", err)
				}
				if !strings.Contains(se.Message, "malformed number") || se.Text != tt.input {
					t.Errorf("ScanError = %+v", se)
				}
				if l.HasNext() {
					t.Error("lexer should have consumed the malformed number")
				}
				return
			}
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Type != TokenNumber || tok.Number != tt.want {
				t.Errorf("NextToken() = %v %v, want Number %v", tok.Type, tok.Number, tt.want)
			}
		})
	}
}

func TestLexerNumberOutOfRange(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400)
	l := NewLexer(huge + ";")

	tok, err := l.NextToken()
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ScanError, got %v", err)
	}
	if !strings.HasPrefix(se.Message, "number out of range") || se.Text != huge {
		t.Errorf("ScanError = %q for %d chars", se.Message, len(se.Text))
	}
	if tok.Type != TokenNumber || tok.Number != math.MaxFloat64 || tok.Value != huge {
		t.Errorf("token = %v %v", tok.Type, tok.Number)
	}

	if next, err := l.NextToken(); err != nil || next.Type != TokenSemiColon {
		t.Errorf("after number = %v, %v", next.Type, err)
	}

	tokens, errs := TokenizeInput(huge)
	if len(errs) != 1 || len(tokens) != 2 || tokens[0].Type != TokenNumber {
		t.Errorf("Tokenize() = %v tokens, %v errors", tokenTypes(tokens), len(errs))
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"double quoted", `"hello world"`, "hello world", false},
		{"single quoted", `'hi'`, "hi", false},
		{"escapes", `"a\"b\\c\nd\te"`, "a\"b\\c\nd\te", false},
		{"other quote inside", `"it's"`, "it's", false},
		{"unknown escape kept", `"\q"`, `\q`, false},
		{"unterminated", `"abc`, "", true},
		{"unterminated after backslash", `"abc\`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			tok, err := l.NextToken()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected scan error, got %v", tok)
				}
				if !strings.Contains(err.Error(), "unterminated string") {
					t.Errorf("error = %v", err)
				}
				next, err := l.NextToken()
				if err != nil || next.Type != TokenNone {
					t.Errorf("after unterminated string got %v, %v", next, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Type != TokenString || tok.Value != tt.want {
				t.Errorf("NextToken() = %v %q, want String %q", tok.Type, tok.Value, tt.want)
			}
		})
	}
}

func TestLexerScanErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"@", `unexpected character '@'`},
		{"!", "did you mean '!='"},
		{"&", "did you mean '&&'"},
		{"|", "did you mean '||'"},
		{"#", `unexpected character '#'`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewLexer(tt.input).NextToken()
			if err == nil || !strings.Contains(err.Error(), tt.message) {
				t.Errorf("NextToken() error = %v, want containing %q", err, tt.message)
			}
		})
	}
}

func TestLexerForwardProgress(t *testing.T) {
	const n = 50
	l := NewLexer(strings.Repeat("@", n))

	errs := 0
	for i := 0; i < n*2; i++ {
		before := l.Offset()
		tok, err := l.NextToken()
		if err != nil {
			errs++
			if l.Offset() <= before {
				t.Fatalf("cursor did not advance on error at offset %d", before)
			}
			continue
		}
		if tok.Type != TokenNone {
			t.Fatalf("unexpected token %v", tok)
		}
		break
	}

	if errs != n {
		t.Errorf("scan errors = %d, want %d", errs, n)
	}
}

func TestLexerRecoversAfterError(t *testing.T) {
	tokens, errs := TokenizeInput("x = 1 @ + 2;")
	if len(errs) != 1 {
		t.Fatalf("scan errors = %v, want 1", errs)
	}
	want := []TokenType{TokenName, TokenEqual, TokenNumber, TokenTerm, TokenNumber, TokenSemiColon, TokenNone}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("types = %v, want %v", got, want)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, _ := TokenizeInput("a\n  bb = 'x'")

	tests := []struct {
		index  int
		line   int
		column int
		offset int
	}{
		{0, 1, 1, 0},
		{1, 2, 3, 4},
		{2, 2, 6, 7},
		{3, 2, 8, 9},
		{4, 2, 11, 12},
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		if tok.Line != tt.line || tok.Column != tt.column || tok.Position != tt.offset {
			t.Errorf("token %d %v at %d:%d offset %d, want %d:%d offset %d",
				tt.index, tok, tok.Line, tok.Column, tok.Position, tt.line, tt.column, tt.offset)
		}
	}
}

func TestLexerComments(t *testing.T) {
	tokens, errs := TokenizeInput("x // trailing comment\n// full line\ny / z")
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	want := []TokenType{TokenName, TokenName, TokenFactor, TokenName, TokenNone}
	if got := tokenTypes(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if tokens[1].Line != 3 || tokens[1].Value != "y" {
		t.Errorf("token after comments = %v at line %d", tokens[1], tokens[1].Line)
	}
}

func TestLexerUnicodeNames(t *testing.T) {
	tok, err := NewLexer("größe_2").NextToken()
	if err != nil {
		t.Fatalf("NextToken() error = %v", err)
	}
	if tok.Type != TokenName || tok.Value != "größe_2" {
		t.Errorf("NextToken() = %v", tok)
	}
}

func TestLexerHasNext(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"   \n\t", false},
		{"  // only a comment", false},
		{" x", true},
		{"@", true},
	}

	for _, tt := range tests {
		l := NewLexer(tt.input)
		if got := l.HasNext(); got != tt.want {
			t.Errorf("HasNext(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if l.Offset() != 0 {
			t.Errorf("HasNext(%q) moved the cursor to %d", tt.input, l.Offset())
		}
	}
}

func TestLexerDeterminism(t *testing.T) {
	input := `let total: number = price * (1 + rate) // comment
	notify(user, message: "done", ok: total >= 10 && true); @ 1.2.3`

	first, firstErrs := TokenizeInput(input)
	second, secondErrs := TokenizeInput(input)

	if !reflect.DeepEqual(first, second) {
		t.Error("tokenizing the same input twice produced different tokens")
	}
	if len(firstErrs) != 2 || len(secondErrs) != 2 {
		t.Errorf("scan errors = %d and %d, want 2", len(firstErrs), len(secondErrs))
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		str      string
		describe string
	}{
		{Token{Type: TokenName, Value: "x"}, "Name(x)", "name 'x'"},
		{Token{Type: TokenNumber, Value: "5", Number: 5}, "Number(5)", "number 5"},
		{Token{Type: TokenString, Value: "a"}, `String("a")`, `string "a"`},
		{Token{Type: TokenBoolean, Value: "true", Bool: true}, "Boolean(true)", "boolean true"},
		{Token{Type: TokenTerm, Value: "+"}, "Term(+)", "'+'"},
		{Token{Type: TokenSemiColon, Value: ";"}, "SemiColon", "';'"},
		{Token{Type: TokenNone}, "None", "end of input"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.tok.Describe(); got != tt.describe {
			t.Errorf("Describe() = %q, want %q", got, tt.describe)
		}
	}
}

func TestKeywords(t *testing.T) {
	for _, word := range []string{"let", "fn", "return", "if", "else", "while", "number", "string", "bool", "dynamic"} {
		if !IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = false", word)
		}
	}
	for _, word := range []string{"x", "Let", "numbers", "true"} {
		if IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = true", word)
		}
	}
	if !reflect.DeepEqual(TypeKeywords(), []string{"bool", "dynamic", "number", "string"}) {
		t.Errorf("TypeKeywords() = %v", TypeKeywords())
	}
	if IsTypeKeyword("let") {
		t.Error("IsTypeKeyword(let) = true")
	}
	if len(Keywords()) != 10 {
		t.Errorf("Keywords() = %v", Keywords())
	}
}

func TestOperatorTier(t *testing.T) {
	if tier, ok := OperatorTier("%"); !ok || tier != TokenFactor {
		t.Errorf("OperatorTier(%%) = %v, %v", tier, ok)
	}
	if _, ok := OperatorTier("="); ok {
		t.Error("'=' is not an operator")
	}
	if !TokenConditional.IsOperator() || TokenEqual.IsOperator() {
		t.Error("IsOperator() misclassifies tiers")
	}
}
