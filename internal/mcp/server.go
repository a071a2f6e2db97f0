// Package mcp provides an MCP (Model Context Protocol) server exposing
// beliefsim's scenario tools: validate, run, and generate.
package mcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server with the beliefsim tool set.
type Server struct {
	server *sdk.Server
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g. "beliefsim")
	Version string // Server version
}

// NewServer creates an MCP server with the beliefsim tools registered.
func NewServer(cfg *Config) *Server {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{server: mcpServer}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport. It blocks until the
// client disconnects, the context is cancelled, or a termination signal
// arrives.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
