// File: parser.go
// Title: Expression Language Parser
// Description: Parser state, token advancement and the diagnostic log. The
//              parser keeps a single lookahead token, records every scan and
//              syntax error and hands out one statement per Next call.
// Author: msto63
// Version: v0.1.1
// Created: 2025-06-02
// Modified: 2025-07-14
//
// Change History:
// - 2025-06-02 v0.1.0: Initial parser implementation
// - 2025-07-14 v0.1.1: Keep tokens that arrive with a scan error

package parser

import (
	"fmt"
	"io"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
)

// DefaultMaxInputLength bounds the source size accepted by New
const DefaultMaxInputLength = 1 << 20

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger
	// MaxInputLength in bytes; 0 selects DefaultMaxInputLength, a negative
	// value disables the check
	MaxInputLength int
}

// Parser implements recursive descent parsing for the expression language
type Parser struct {
	lexer   *Lexer
	current Token
	logger  *mdwlog.Logger
	options Options

	diagnostics Diagnostics
	// diagnostics[:reported] belong to results already returned by Next
	reported int
	// the terminator of the last statement still has to be consumed
	pendingAdvance bool
	traceTokens    bool
}

// New creates a parser for input and loads the first token
func New(input string, opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxInputLength > 0 && len(input) > opts.MaxInputLength {
		return nil, mdwerror.Newf("input exceeds maximum length: %d > %d", len(input), opts.MaxInputLength).
			WithCode(mdwerror.CodeInputTooLarge).
			WithDetail("length", len(input)).
			WithDetail("max_length", opts.MaxInputLength)
	}

	logger := opts.Logger.WithField("component", "exprlang-parser")
	p := &Parser{
		lexer:       NewLexer(input),
		logger:      logger,
		options:     opts,
		traceTokens: logger.IsLevelEnabled(mdwlog.LevelTrace),
	}
	p.advance()
	return p, nil
}

// MustNew is like New but panics if the input is rejected
func MustNew(input string, opts Options) *Parser {
	p, err := New(input, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// HasNext reports whether any tokens remain
func (p *Parser) HasNext() bool {
	p.sync()
	return p.current.Type != TokenNone
}

// GetNext returns the next statement, or nil both at the end of input and
// when the statement could not be parsed. Use Next to tell these apart.
func (p *Parser) GetNext() mdwast.Expr {
	return p.Next().Node
}

// Diagnostics returns a copy of every diagnostic recorded so far
func (p *Parser) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), p.diagnostics...)
}

// Errors renders every diagnostic recorded so far
func (p *Parser) Errors() []string {
	return p.diagnostics.Strings()
}

// HasErrors reports whether any diagnostic was recorded
func (p *Parser) HasErrors() bool {
	return len(p.diagnostics) > 0
}

// ReportErrors writes every diagnostic to w, one per line
func (p *Parser) ReportErrors(w io.Writer) error {
	for _, d := range p.diagnostics {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// sync consumes the terminator of the previous statement. Deferring this
// until the next pull attributes scan errors behind the terminator to the
// following result.
func (p *Parser) sync() {
	if p.pendingAdvance {
		p.pendingAdvance = false
		p.advance()
	}
}

// advance moves to the next token, recording scan errors on the way
func (p *Parser) advance() {
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			p.record(scanDiagnostic(err))
			if tok.Type == TokenNone {
				continue
			}
		}
		if p.traceTokens {
			p.logger.Trace("token", mdwlog.Fields{
				"type":   tok.Type.String(),
				"value":  tok.Value,
				"line":   tok.Line,
				"column": tok.Column,
			})
		}
		p.current = tok
		return
	}
}

func (p *Parser) record(d Diagnostic) {
	p.diagnostics = append(p.diagnostics, d)
	p.logger.Debug(d.Kind.String()+" error", mdwlog.Fields{
		"diagnostic": d.Message,
		"line":       d.Line,
		"column":     d.Column,
	})
}

// syntaxError records a syntax diagnostic positioned at tok
func (p *Parser) syntaxError(tok Token, format string, args ...interface{}) {
	p.record(Diagnostic{
		Kind:    DiagnosticSyntax,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
		Offset:  tok.Position,
		AtEnd:   tok.Type == TokenNone,
	})
}

// mark returns a checkpoint for quiet
func (p *Parser) mark() int {
	return len(p.diagnostics)
}

// quiet reports whether nothing was recorded since checkpoint
func (p *Parser) quiet(checkpoint int) bool {
	return len(p.diagnostics) == checkpoint
}
