// Package mcp exposes the scoring, offer and intent functions as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "sustainabuy"
	serverVersion = "1.0.0"
)

// NewServer builds an MCP server with all tools registered.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	return s
}

// Serve starts the MCP stdio server.
func Serve() error {
	return server.ServeStdio(NewServer())
}
