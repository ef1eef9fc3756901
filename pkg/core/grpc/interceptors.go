package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/msto63/exprfront/pkg/core/logging"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "x-request-id"

var (
	interceptorLogger = logging.New("grpc")
	serverLogger      = interceptorLogger
)

// SetLogger replaces the logger of the interceptors and the server. Call it
// before creating servers or clients.
func SetLogger(logger *logging.Logger) {
	interceptorLogger = logger
	serverLogger = logger
}

type requestIDKey struct{}

// WithRequestID stores id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, falling back to the
// incoming metadata
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// RequestIDInterceptor takes the caller's request ID or generates one,
// stores it in the handler context and echoes it in the response header
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		id := RequestID(ctx)
		if id == "" {
			id = uuid.New().String()
		}
		// fails only outside a real transport stream, as in direct calls
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))
		return handler(WithRequestID(ctx, id), req)
	}
}

// RecoveryInterceptor converts a handler panic into codes.Internal
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				interceptorLogger.Error("Handler panicked",
					"method", info.FullMethod,
					"request_id", RequestID(ctx),
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				resp, err = nil, status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// sourceRequest matches wrapper requests that carry source text
type sourceRequest interface {
	GetValue() string
}

// LoggingInterceptor logs one line per call. Rejected input is a warning,
// server faults are errors.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		kv := []interface{}{
			"request_id", RequestID(ctx),
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000,
		}
		if src, ok := req.(sourceRequest); ok {
			kv = append(kv, "length", len(src.GetValue()))
		}

		switch code {
		case codes.OK:
			interceptorLogger.Info("Call served", kv...)
		case codes.InvalidArgument, codes.DeadlineExceeded, codes.Canceled:
			interceptorLogger.Warn("Call rejected", kv...)
		default:
			interceptorLogger.Error("Call failed", kv...)
		}
		return resp, err
	}
}
