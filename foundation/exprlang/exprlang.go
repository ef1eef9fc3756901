// File: exprlang.go
// Title: Expression Language Engine
// Description: High-level entry point that runs the tokenizer and parser
//              over a complete source text and collects every statement and
//              diagnostic into a Program. Each call gets its own parser and
//              request ID, so one Engine can serve concurrent callers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial engine implementation

package exprlang

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
	mdwparser "github.com/msto63/exprfront/foundation/exprlang/parser"
)

// Engine parses complete source texts
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	// Logger for engine and parser output (defaults to the default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits the source size in bytes (default:
	// parser.DefaultMaxInputLength, negative disables the limit)
	MaxInputLength int
}

// Program is everything produced from one source text
type Program struct {
	RequestID   string
	Statements  []mdwast.Expr
	Diagnostics mdwparser.Diagnostics
	// Failed counts pulls that consumed source without producing a node
	Failed   int
	Duration time.Duration
}

// NewEngine creates an engine with the given options
func NewEngine(opts ...Options) *Engine {
	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Logger == nil {
		options.Logger = mdwlog.GetDefault()
	}
	if options.MaxInputLength == 0 {
		options.MaxInputLength = mdwparser.DefaultMaxInputLength
	}

	return &Engine{
		logger:  options.Logger.WithField("component", "exprlang-engine"),
		options: options,
	}
}

type requestIDKey struct{}

// WithRequestID makes ParseAll on ctx use id instead of generating one.
// An empty id leaves ctx unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFor returns the ID set with WithRequestID or a new random one
func RequestIDFor(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return uuid.New().String()
}

// ParseAll parses source to the end. Diagnostics are part of the returned
// Program; an error is returned only when the input is rejected up front
// or ctx is done before parsing finished.
func (e *Engine) ParseAll(ctx context.Context, source string) (*Program, error) {
	requestID := RequestIDFor(ctx)
	logger := e.logger.WithRequestID(requestID)

	timer := logger.StartTimer("parse").WithField("length", len(source))

	p, err := mdwparser.New(source, mdwparser.Options{
		Logger:         logger,
		MaxInputLength: e.options.MaxInputLength,
	})
	if err != nil {
		timer.StopWithError(err)
		return nil, mdwerror.Wrap(err, "rejecting source").WithRequestID(requestID)
	}

	prog := &Program{RequestID: requestID}
	for {
		if err := ctx.Err(); err != nil {
			timer.StopWithError(err)
			return nil, mdwerror.Wrap(err, "parse interrupted").
				WithCode(mdwerror.CodeTimeout).
				WithRequestID(requestID).
				WithDetail("statements", len(prog.Statements))
		}

		res := p.Next()
		prog.Diagnostics = append(prog.Diagnostics, res.Diagnostics...)
		if res.Outcome == mdwparser.OutcomeEnd {
			break
		}
		if res.Outcome == mdwparser.OutcomeFailed {
			prog.Failed++
			continue
		}
		prog.Statements = append(prog.Statements, res.Node)
	}

	timer.WithField("statements", len(prog.Statements)).
		WithField("diagnostics", len(prog.Diagnostics))
	prog.Duration = timer.StopWithResult(!prog.HasErrors(), prog.Failed)
	return prog, nil
}

// Tokenize returns the full token stream of source and its scan errors
func (e *Engine) Tokenize(source string) ([]mdwparser.Token, []error, error) {
	if limit := e.options.MaxInputLength; limit > 0 && len(source) > limit {
		return nil, nil, mdwerror.Newf("input exceeds maximum length: %d > %d", len(source), limit).
			WithCode(mdwerror.CodeInputTooLarge)
	}
	tokens, errs := mdwparser.TokenizeInput(source)
	e.logger.Debug("tokenized", mdwlog.Fields{
		"tokens":      len(tokens),
		"scan_errors": len(errs),
	})
	return tokens, errs, nil
}

// HasErrors reports whether any diagnostic was recorded
func (p *Program) HasErrors() bool {
	return len(p.Diagnostics) > 0
}

// Err returns nil for a clean program and otherwise a structured error
// carrying the first diagnostic and the total count
func (p *Program) Err() error {
	if !p.HasErrors() {
		return nil
	}
	first := p.Diagnostics[0]
	return first.Err().
		WithRequestID(p.RequestID).
		WithDetail("diagnostics", len(p.Diagnostics))
}

// ToMap encodes the program with plain maps and slices, ready for JSON,
// YAML or protobuf Struct conversion
func (p *Program) ToMap() map[string]interface{} {
	statements := make([]interface{}, len(p.Statements))
	rendered := make([]interface{}, len(p.Statements))
	for i, stmt := range p.Statements {
		statements[i] = mdwast.ToMap(stmt)
		rendered[i] = stmt.String()
	}
	diagnostics := make([]interface{}, len(p.Diagnostics))
	for i, d := range p.Diagnostics {
		diagnostics[i] = DiagnosticMap(d)
	}
	return map[string]interface{}{
		"request_id":  p.RequestID,
		"statements":  statements,
		"rendered":    rendered,
		"diagnostics": diagnostics,
		"failed":      float64(p.Failed),
	}
}

// DiagnosticMap encodes one diagnostic
func DiagnosticMap(d mdwparser.Diagnostic) map[string]interface{} {
	return map[string]interface{}{
		"kind":    d.Kind.String(),
		"code":    d.Code().String(),
		"message": d.Message,
		"line":    float64(d.Line),
		"column":  float64(d.Column),
	}
}

// TokenMap encodes one token
func TokenMap(t mdwparser.Token) map[string]interface{} {
	m := map[string]interface{}{
		"type":   t.Type.String(),
		"text":   t.String(),
		"line":   float64(t.Line),
		"column": float64(t.Column),
	}
	switch t.Type {
	case mdwparser.TokenNumber:
		m["value"] = t.Number
	case mdwparser.TokenBoolean:
		m["value"] = t.Bool
	case mdwparser.TokenNone:
	default:
		m["value"] = t.Value
	}
	return m
}

// TokenStreamMap encodes a token stream and its scan errors
func TokenStreamMap(tokens []mdwparser.Token, errs []error) map[string]interface{} {
	encoded := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		encoded[i] = TokenMap(tok)
	}
	scanErrors := make([]interface{}, len(errs))
	for i, err := range errs {
		entry := map[string]interface{}{"message": err.Error()}
		var se *mdwparser.ScanError
		if errors.As(err, &se) {
			entry["message"] = se.Message
			entry["text"] = se.Text
			entry["line"] = float64(se.Line)
			entry["column"] = float64(se.Column)
		}
		scanErrors[i] = entry
	}
	return map[string]interface{}{
		"tokens":      encoded,
		"scan_errors": scanErrors,
	}
}
