package cmd

import (
	"github.com/finsight/finsight/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the FinSight MCP server",
	Long:  `Launch an MCP server that lets AI agents request dataset summaries, health scores, anomalies and forecasts via standard tools.`,
	PreRunE: func(_ *cobra.Command, args []string) error {
		// The server takes sources per tool call, so none are required here.
		return sharedSetup(rootCtx, args, false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
