// Package parsesvc exposes the expression front end as a gRPC service.
//
// The service uses protobuf well-known types only: sources travel as
// google.protobuf.StringValue and results as google.protobuf.Struct, so no
// generated stubs are needed on either side.
package parsesvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "exprfront.v1.ParseService"

// Full method names
const (
	ParseMethod    = "/" + ServiceName + "/Parse"
	TokenizeMethod = "/" + ServiceName + "/Tokenize"
	HealthMethod   = "/" + ServiceName + "/Health"
)

// ParseServiceServer is the server API for ParseService
type ParseServiceServer interface {
	// Parse parses a source text into statements and diagnostics
	Parse(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Tokenize returns the token stream of a source text
	Tokenize(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Health returns the service health report
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterParseServiceServer registers srv on s
func RegisterParseServiceServer(s grpc.ServiceRegistrar, srv ParseServiceServer) {
	s.RegisterService(&ParseServiceDesc, srv)
}

// ParseServiceDesc is the grpc.ServiceDesc for ParseService
var ParseServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ParseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Tokenize", Handler: tokenizeHandler},
		{MethodName: "Health", Handler: healthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "exprfront/v1/parse.proto",
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServiceServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParseServiceServer).Parse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func tokenizeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServiceServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TokenizeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParseServiceServer).Tokenize(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func healthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServiceServer).Health(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: HealthMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParseServiceServer).Health(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
