package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rncdiscover/rnc/core/javasrc"
	"github.com/rncdiscover/rnc/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the rnc MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents run discoveries and classify methods.

Tools:
  discover_project - scan a project and return the JSON summary (no files are written)
  classify_method  - decide whether one method body encodes business rules`,
	PreRunE: commonSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, javasrc.New())
	},
}
