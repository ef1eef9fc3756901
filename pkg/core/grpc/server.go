package grpc

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
)

// ServerConfig describes where a server listens and its transport limits
type ServerConfig struct {
	Host             string
	Port             int
	MaxRecvMsgSize   int
	EnableReflection bool

	// Idle connections are pinged after Keepalive and closed when the ping
	// is not answered within KeepaliveTimeout
	Keepalive        time.Duration
	KeepaliveTimeout time.Duration
}

// DefaultServerConfig returns the parse service transport defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:             "0.0.0.0",
		Port:             9300,
		MaxRecvMsgSize:   4 * 1024 * 1024,
		EnableReflection: true,
		Keepalive:        30 * time.Second,
		KeepaliveTimeout: 10 * time.Second,
	}
}

// Address returns the configured host:port
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server is a gRPC server with the unary interceptor chain installed. It
// implements grpc.ServiceRegistrar, so generated or hand-written Register
// functions accept it directly.
type Server struct {
	grpc   *grpc.Server
	config ServerConfig

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a server; opts are appended after the defaults
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	serverOpts := append([]grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.Keepalive,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		// request IDs first so recovery and logging can report them
		grpc.ChainUnaryInterceptor(
			RequestIDInterceptor(),
			RecoveryInterceptor(),
			LoggingInterceptor(),
		),
	}, opts...)

	server := grpc.NewServer(serverOpts...)
	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{grpc: server, config: cfg}
}

// RegisterService implements grpc.ServiceRegistrar
func (s *Server) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	s.grpc.RegisterService(desc, impl)
}

// Listen binds the configured address without serving yet. A port of 0
// picks a free port; Address reports the bound one.
func (s *Server) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to listen").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("grpc.Listen").
			WithDetail("address", s.config.Address())
	}
	s.setListener(listener)
	return listener, nil
}

// Serve serves on listener until the server stops
func (s *Server) Serve(listener net.Listener) error {
	s.setListener(listener)
	return s.grpc.Serve(listener)
}

// Shutdown drains in-flight calls and falls back to a hard stop when ctx
// ends first
func (s *Server) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		serverLogger.Warn("Graceful stop timed out, closing connections", "error", ctx.Err())
		s.grpc.Stop()
		<-done
	}
}

// Address returns the bound address once listening, otherwise the
// configured one
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Address()
}

func (s *Server) setListener(listener net.Listener) {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
}
