package cmd

import (
	"github.com/huangsam/dealsense/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Dealsense MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents request decisions through three tools:

  classify_dormant_lead - classify one dormant lead
  score_lead            - score and route one inbound lead
  analyze_lost_deal     - analyze one lost deal

Each tool takes the entity as a JSON string in its entity_json argument.
Logs go to stderr so the protocol stream on stdout stays clean.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
