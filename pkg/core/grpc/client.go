package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
)

// ClientConfig holds gRPC client configuration
type ClientConfig struct {
	Target         string
	Timeout        time.Duration
	MaxRecvMsgSize int
	Keepalive      time.Duration
	Block          bool // wait until the connection is ready
}

// DefaultClientConfig returns the client defaults for target
func DefaultClientConfig(target string) ClientConfig {
	return ClientConfig{
		Target:         target,
		Timeout:        10 * time.Second,
		MaxRecvMsgSize: 4 * 1024 * 1024,
		Keepalive:      30 * time.Second,
	}
}

// Dial opens a plaintext connection with the client interceptor installed
func Dial(cfg ClientConfig, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize)),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.Keepalive,
			PermitWithoutStream: true,
		}),
		grpc.WithUnaryInterceptor(ClientInterceptor()),
	}, opts...)
	if cfg.Block {
		dialOpts = append(dialOpts, grpc.WithBlock())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, cfg.Target, dialOpts...)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to connect").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("grpc.Dial").
			WithDetail("target", cfg.Target)
	}
	return conn, nil
}

// DialWithTimeout dials target with the defaults and a custom timeout
func DialWithTimeout(target string, timeout time.Duration) (*grpc.ClientConn, error) {
	cfg := DefaultClientConfig(target)
	cfg.Timeout = timeout
	return Dial(cfg)
}

// ClientInterceptor sends the request ID of ctx, or a fresh one, with every
// call and logs the outcome at debug level
func ClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		id := RequestID(ctx)
		if id == "" {
			id = uuid.New().String()
		}
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, id)

		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		interceptorLogger.Debug("Call sent",
			"request_id", id,
			"method", method,
			"code", status.Code(err).String(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
		)
		return err
	}
}
