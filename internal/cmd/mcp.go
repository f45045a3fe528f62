package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"flowgen/internal/mcp"
)

// mcpCmd represents the flowgen mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Run flowgen as an MCP (Model Context Protocol) server on stdio.

The server exposes a flowgen_generate tool so AI agents can request
control-flow diagrams for C# files directly.

Example Claude Desktop / MCP client configuration:
  {
    "mcpServers": {
      "flowgen": { "command": "flowgen", "args": ["mcp"] }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Debug("starting MCP server", "version", Version)
	return mcp.New(cfg, Version).ServeStdio()
}
