package cmd

import (
	"github.com/huangsam/tpmplot/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the TPM plot MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents summarize, inspect and chart TPM result files.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool calls supply their own files, so only global settings are resolved here
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
