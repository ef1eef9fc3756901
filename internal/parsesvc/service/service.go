package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
	"github.com/msto63/exprfront/foundation/exprlang"
	mdwparser "github.com/msto63/exprfront/foundation/exprlang/parser"
	"github.com/msto63/exprfront/pkg/core/cache"
	"github.com/msto63/exprfront/pkg/core/logging"
)

// canary is parsed by the health check
const canary = "let canary: number = 1 + 2 * 3;"

// Service parses source texts on behalf of remote callers
type Service struct {
	current     atomic.Pointer[generation]
	generations atomic.Uint64
	logger      *logging.Logger
	timeout     time.Duration
	results     *cache.Cache[cachedProgram]
}

// generation is one engine configuration. Cached programs remember the
// generation that produced them and are only served while it is current.
type generation struct {
	id     uint64
	engine *exprlang.Engine
}

type cachedProgram struct {
	program    *exprlang.Program
	generation uint64
}

// Config holds service configuration
type Config struct {
	// MaxInputLength in bytes, 0 selects the parser default
	MaxInputLength int

	// RequestTimeout bounds one Parse call (0 disables it)
	RequestTimeout time.Duration

	// CacheSize bounds the number of cached parse results (0 disables
	// caching)
	CacheSize int
	CacheTTL  time.Duration

	Logger *logging.Logger
}

// NewService creates a new parse service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("parse-service")
	}
	if cfg.RequestTimeout < 0 {
		return nil, mdwerror.Newf("negative request timeout: %v", cfg.RequestTimeout).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("service.NewService")
	}

	svc := &Service{
		logger:  logger,
		timeout: cfg.RequestTimeout,
	}
	svc.SetMaxInputLength(cfg.MaxInputLength)
	if cfg.CacheSize > 0 {
		svc.results = cache.New[cachedProgram](cache.Config{
			MaxItems: cfg.CacheSize,
			TTL:      cfg.CacheTTL,
		})
	}
	return svc, nil
}

// SetMaxInputLength replaces the engine with one using the new limit.
// Parses already running finish with the old engine, and results of the
// old engine are never served from the cache again.
func (s *Service) SetMaxInputLength(limit int) {
	s.current.Store(&generation{
		id: s.generations.Add(1),
		engine: exprlang.NewEngine(exprlang.Options{
			Logger:         s.logger.Logger,
			MaxInputLength: limit,
		}),
	})
	if s.results != nil {
		s.results.Clear()
	}
}

// Close drops cached results
func (s *Service) Close() {
	if s.results != nil {
		s.results.Clear()
	}
}

// Parse parses source and returns every statement and diagnostic.
// Diagnostics are part of a successful result.
func (s *Service) Parse(ctx context.Context, source string) (*exprlang.Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, mdwerror.New("source is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("service.Parse")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	gen := s.current.Load()

	var key string
	if s.results != nil {
		key = cache.HashKey(source)
		if cached, ok := s.results.Get(key); ok && cached.generation == gen.id {
			prog := *cached.program
			prog.RequestID = exprlang.RequestIDFor(ctx)
			s.logger.Debug("Parse served from cache", "request_id", prog.RequestID)
			return &prog, nil
		}
	}

	prog, err := gen.engine.ParseAll(ctx, source)
	if err != nil {
		s.logger.Warn("Parse rejected", "error", err.Error(), "length", len(source))
		return nil, err
	}
	if s.results != nil {
		s.results.Set(key, cachedProgram{program: prog, generation: gen.id})
	}

	s.logger.Debug("Parse finished",
		"request_id", prog.RequestID,
		"statements", len(prog.Statements),
		"diagnostics", len(prog.Diagnostics),
	)
	return prog, nil
}

// Tokenize returns the token stream of source and its scan errors
func (s *Service) Tokenize(ctx context.Context, source string) ([]mdwparser.Token, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, mdwerror.Wrap(err, "tokenize interrupted").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("service.Tokenize")
	}
	return s.current.Load().engine.Tokenize(source)
}

// SelfCheck parses a fixed statement and fails when the parser does not
// accept it cleanly
func (s *Service) SelfCheck(ctx context.Context) error {
	prog, err := s.current.Load().engine.ParseAll(ctx, canary)
	if err != nil {
		return err
	}
	if len(prog.Statements) != 1 || prog.HasErrors() {
		return mdwerror.Newf("canary produced %d statements and %d diagnostics",
			len(prog.Statements), len(prog.Diagnostics)).
			WithCode(mdwerror.CodeInternal)
	}
	return nil
}
