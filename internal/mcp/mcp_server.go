// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rncdiscover/rnc/internal/contract"
)

// NewMCPServer initializes and configures the rnc MCP server without starting it.
// This is exposed for unit testing. A nil parser limits classify_method to the text rules
// and leaves discover_project without class metrics.
func NewMCPServer(baseCfg *contract.Config, parser contract.JavaParser) *server.MCPServer {
	s := server.NewMCPServer(
		"RNC Discovery Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		parser:  parser,
	}

	// --- 1. Tool: discover_project ---
	s.AddTool(mcp.NewTool("discover_project",
		mcp.WithDescription("Scan a Java/JSF project tree for entities, business components, JSF pages, database configuration and business-rule metrics. No report files are written."),
		mcp.WithString("project_path", mcp.Description("Path to the project root directory."), mcp.Required()),
		mcp.WithString("classifier", mcp.Description("Method classifier strategy (tree, text). Defaults to the configured one."), mcp.Enum("tree", "text")),
	), h.handleDiscoverProject)

	// --- 2. Tool: classify_method ---
	s.AddTool(mcp.NewTool("classify_method",
		mcp.WithDescription("Decide whether a single Java method body likely encodes business rules."),
		mcp.WithString("name", mcp.Description("The method name. Accessor names (get*, set*, is*) are never business rules."), mcp.Required()),
		mcp.WithString("body", mcp.Description("The method body, braces included."), mcp.Required()),
	), h.handleClassifyMethod)

	return s
}

// StartMCPServer starts the rnc MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, parser contract.JavaParser) error {
	s := NewMCPServer(baseCfg, parser)
	return server.ServeStdio(s)
}
