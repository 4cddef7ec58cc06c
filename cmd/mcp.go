package cmd

import (
	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/mcp"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Deedscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to score and screen properties via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP handlers call the scorer directly, so header logs never reach
		// the stdio channel used for the protocol.
		return sharedSetup(core.WithSuppressHeader(rootCtx), cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		scorer := core.NewScorer(propstore.Manager.GetStore(), cfg.EdgeCases)
		return mcp.StartMCPServer(rootCtx, cfg, scorer)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
