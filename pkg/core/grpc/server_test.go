package grpc

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 9300, "0.0.0.0:9300"},
		{"127.0.0.1", 0, "127.0.0.1:0"},
		{"::1", 9400, "[::1]:9400"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := DefaultServerConfig()
			cfg.Host, cfg.Port = tt.host, tt.port
			if got := cfg.Address(); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServer_ListenServeShutdown(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host, cfg.Port = "127.0.0.1", 0
	cfg.EnableReflection = false

	srv := NewServer(cfg)
	healthpb.RegisterHealthServer(srv, grpchealth.NewServer())

	if srv.Address() != "127.0.0.1:0" {
		t.Errorf("Address() before Listen = %q", srv.Address())
	}

	listener, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if strings.HasSuffix(srv.Address(), ":0") {
		t.Errorf("Address() after Listen = %q, want the bound port", srv.Address())
	}

	served := make(chan error, 1)
	go func() { served <- srv.Serve(listener) }()

	conn, err := Dial(DefaultClientConfig(srv.Address()))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = WithRequestID(ctx, "req-echo")

	var header metadata.MD
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v", resp.GetStatus())
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-echo" {
		t.Errorf("response %s = %v, want req-echo", RequestIDHeader, got)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	srv.Shutdown(stopCtx)

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() returned %v after Shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after Shutdown")
	}
}

func TestServer_ListenError(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host, cfg.Port = "256.0.0.1", 1
	if _, err := NewServer(cfg).Listen(); err == nil {
		t.Fatal("Listen() on an invalid host should fail")
	}
}
