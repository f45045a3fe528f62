// Package mcp provides an MCP (Model Context Protocol) server for flowgen.
// This lets AI agents request control-flow diagrams for C# files through an
// MCP tool instead of the CLI.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowgen/internal/config"
	"flowgen/internal/flow"
	"flowgen/internal/parser"
	"flowgen/internal/stmt"
)

// Server wraps the MCP server with flowgen-specific functionality.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
}

// New creates an MCP server exposing the flowgen_generate tool. The config
// supplies method-selection and output settings for every generation.
func New(cfg *config.Config, version string) *Server {
	mcpServer := server.NewMCPServer(
		"flowgen",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{mcpServer: mcpServer, cfg: cfg}

	tool := mcp.NewTool("flowgen_generate",
		mcp.WithDescription("Generate a Mermaid control-flow diagram for a C# source file. "+
			"Diagrams the Page_Load entry method and event handlers by default, or a single named method."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the C# source file"),
		),
		mcp.WithString("method",
			mcp.Description("Exact method name to diagram (optional)"),
		),
	)
	mcpServer.AddTool(tool, s.handleGenerate)

	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// handleGenerate parses the requested file, lowers it, and returns the
// rendered diagram. File-level failures become tool errors; a missing class
// or method degrades to a placeholder diagram per the generator's contract.
func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	file, ok := args["file"].(string)
	if !ok || file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}
	method, _ := args["method"].(string)

	if _, err := os.Stat(file); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", file, err)), nil
	}

	p := parser.NewParser()
	defer p.Close()

	result, err := p.ParseFile(file)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer result.Close()

	class := stmt.NewLowerer(result).LowerFile()

	gen := flow.NewGenerator(flow.Options{
		EntryMethod:     s.cfg.Flow.EntryMethod,
		HandlerSuffixes: s.cfg.Flow.HandlerSuffixes,
		Direction:       s.cfg.Output.Direction,
	})
	return mcp.NewToolResultText(gen.Generate(class, method)), nil
}
