// ============================================================================
// exprfront - Expression language front end
// ============================================================================
//
// Package:     grpc
// Description: Integration test helpers for a running parse service
// Author:      msto63
// Created:     2025-06-02
// License:     MIT
// ============================================================================

package grpc

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"

	"github.com/msto63/exprfront/internal/parsesvc"
	coreGrpc "github.com/msto63/exprfront/pkg/core/grpc"
)

// ServiceConfig holds configuration for a gRPC service
type ServiceConfig struct {
	Name    string
	Host    string
	Port    int
	Timeout time.Duration
}

// DefaultServiceConfig returns the parse service location, overridable via
// EXPRFRONT_PARSE_HOST and EXPRFRONT_PARSE_PORT
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:    "parse",
		Host:    getEnvOrDefault("EXPRFRONT_PARSE_HOST", "localhost"),
		Port:    getEnvOrDefaultInt("EXPRFRONT_PARSE_PORT", 9300),
		Timeout: 10 * time.Second,
	}
}

// TestConnection represents a gRPC connection for testing
type TestConnection struct {
	conn   *grpc.ClientConn
	client *parsesvc.Client
	config ServiceConfig
}

// NewTestConnection creates a new test connection to the parse service
func NewTestConnection(cfg ServiceConfig) (*TestConnection, error) {
	clientCfg := coreGrpc.DefaultClientConfig(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	clientCfg.Timeout = cfg.Timeout
	clientCfg.Block = true

	conn, err := coreGrpc.Dial(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Name, err)
	}

	return &TestConnection{
		conn:   conn,
		client: parsesvc.NewClient(conn),
		config: cfg,
	}, nil
}

// Client returns the parse service client
func (tc *TestConnection) Client() *parsesvc.Client {
	return tc.client
}

// Conn returns the underlying gRPC connection
func (tc *TestConnection) Conn() *grpc.ClientConn {
	return tc.conn
}

// ContextWithTimeout returns a new context with a custom timeout
func (tc *TestConnection) ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Close closes the connection
func (tc *TestConnection) Close() error {
	return tc.conn.Close()
}

// Address returns the service address
func (tc *TestConnection) Address() string {
	return fmt.Sprintf("%s:%d", tc.config.Host, tc.config.Port)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
