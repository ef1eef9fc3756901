// File: keywords.go
// Title: Reserved Words
// Description: Static tables of reserved words and type keywords. Names are
//              classified against these tables once, when the parser looks
//              at a Name token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial keyword tables

package parser

import (
	"sort"

	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// KeywordLet starts a declaration
const KeywordLet = "let"

var typeKeywords = map[string]struct{}{
	"number":           {},
	"string":           {},
	"bool":             {},
	mdwast.DynamicType: {},
}

var reservedWords = map[string]struct{}{
	KeywordLet: {},
	"fn":       {},
	"return":   {},
	"if":       {},
	"else":     {},
	"while":    {},
}

func init() {
	for name := range typeKeywords {
		reservedWords[name] = struct{}{}
	}
}

// IsKeyword reports whether name is reserved and cannot be used as an
// identifier
func IsKeyword(name string) bool {
	_, ok := reservedWords[name]
	return ok
}

// IsTypeKeyword reports whether name is a recognized declared type
func IsTypeKeyword(name string) bool {
	_, ok := typeKeywords[name]
	return ok
}

// Keywords returns all reserved words in sorted order
func Keywords() []string {
	words := make([]string, 0, len(reservedWords))
	for w := range reservedWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// TypeKeywords returns the recognized type names in sorted order
func TypeKeywords() []string {
	types := make([]string, 0, len(typeKeywords))
	for t := range typeKeywords {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
