package parsesvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote ParseService
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Parse sends source to the service and returns the encoded program
func (c *Client) Parse(ctx context.Context, source string, opts ...grpc.CallOption) (map[string]interface{}, error) {
	return c.call(ctx, ParseMethod, wrapperspb.String(source), opts...)
}

// Tokenize sends source to the service and returns the encoded token stream
func (c *Client) Tokenize(ctx context.Context, source string, opts ...grpc.CallOption) (map[string]interface{}, error) {
	return c.call(ctx, TokenizeMethod, wrapperspb.String(source), opts...)
}

// Health returns the remote health report
func (c *Client) Health(ctx context.Context, opts ...grpc.CallOption) (map[string]interface{}, error) {
	return c.call(ctx, HealthMethod, &emptypb.Empty{}, opts...)
}

func (c *Client) call(ctx context.Context, method string, in interface{}, opts ...grpc.CallOption) (map[string]interface{}, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
