package server

import (
	"context"
	"net"
	"time"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
	"github.com/msto63/exprfront/foundation/exprlang"
	"github.com/msto63/exprfront/internal/parsesvc"
	"github.com/msto63/exprfront/internal/parsesvc/service"
	coreGrpc "github.com/msto63/exprfront/pkg/core/grpc"
	"github.com/msto63/exprfront/pkg/core/health"
	"github.com/msto63/exprfront/pkg/core/logging"
	"github.com/msto63/exprfront/pkg/core/version"
	"google.golang.org/grpc/codes"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server is the parse gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	standard  *grpchealth.Server
	logger    *logging.Logger
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	MaxRecvMsgSize   int
	MaxInputLength   int
	RequestTimeout   time.Duration
	CacheSize        int
	CacheTTL         time.Duration
	Logger           *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           9300,
		MaxRecvMsgSize: 4 * 1024 * 1024,
		RequestTimeout: 10 * time.Second,
		CacheSize:      256,
		CacheTTL:       5 * time.Minute,
	}
}

// New creates a new parse server
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("parse-server")
	}

	// Create service
	svc, err := service.NewService(service.Config{
		MaxInputLength: cfg.MaxInputLength,
		RequestTimeout: cfg.RequestTimeout,
		CacheSize:      cfg.CacheSize,
		CacheTTL:       cfg.CacheTTL,
		Logger:         logger,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create service").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("server.New")
	}

	// Create gRPC server
	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	if cfg.MaxRecvMsgSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.MaxRecvMsgSize
	}

	grpcServer := coreGrpc.NewServer(grpcCfg)

	// The canary parse is the only check; it shares the request timeout
	healthRegistry := health.NewRegistry(parsesvc.ServiceName, version.ParseService, cfg.RequestTimeout)
	healthRegistry.Register("parser", svc.SelfCheck)

	standard := grpchealth.NewServer()
	standard.SetServingStatus(parsesvc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		standard:  standard,
		logger:    logger,
		startTime: time.Now(),
	}

	// Register gRPC services
	parsesvc.RegisterParseServiceServer(grpcServer, server)
	healthpb.RegisterHealthServer(grpcServer, standard)

	return server, nil
}

// Ensure Server implements ParseServiceServer
var _ parsesvc.ParseServiceServer = (*Server)(nil)

// Parse implements ParseServiceServer.Parse
func (s *Server) Parse(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	ctx = exprlang.WithRequestID(ctx, coreGrpc.RequestID(ctx))
	prog, err := s.service.Parse(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("Parse", err)
	}

	out, err := structpb.NewStruct(prog.ToMap())
	if err != nil {
		s.logger.Error("Encoding program failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Tokenize implements ParseServiceServer.Tokenize
func (s *Server) Tokenize(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	tokens, errs, err := s.service.Tokenize(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("Tokenize", err)
	}

	out, err := structpb.NewStruct(exprlang.TokenStreamMap(tokens, errs))
	if err != nil {
		s.logger.Error("Encoding tokens failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Health implements ParseServiceServer.Health
func (s *Server) Health(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	report := s.health.Check(ctx)
	if report.Healthy() {
		s.standard.SetServingStatus(parsesvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	} else {
		s.standard.SetServingStatus(parsesvc.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	out, err := structpb.NewStruct(report.ToMap())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// toStatus maps service errors onto gRPC status codes
func (s *Server) toStatus(op string, err error) error {
	switch {
	case mdwerror.HasCode(err, mdwerror.CodeInvalidInput), mdwerror.HasCode(err, mdwerror.CodeInputTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case mdwerror.HasCode(err, mdwerror.CodeTimeout):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		s.logger.Error(op+" failed", "error", err)
		return status.Error(codes.Internal, err.Error())
	}
}

// SetMaxInputLength changes the source size limit of the running service
func (s *Server) SetMaxInputLength(limit int) {
	s.logger.Info("Parser limit changed", "max_input_length", limit)
	s.service.SetMaxInputLength(limit)
}

// Listen binds the configured address; Address then reports the bound
// port
func (s *Server) Listen() (net.Listener, error) {
	return s.grpc.Listen()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("Serving parse requests", "address", listener.Addr().String())
	return s.grpc.Serve(listener)
}

// Stop marks the service as not serving, drains calls until ctx ends and
// releases the result cache
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping parse server", "uptime", time.Since(s.startTime).String())
	s.standard.Shutdown()
	s.grpc.Shutdown(ctx)
	s.service.Close()
}

// Address returns the bound address once listening, otherwise the
// configured one
func (s *Server) Address() string {
	return s.grpc.Address()
}
