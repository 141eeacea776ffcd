package cmd

import (
	"github.com/huangsam/atlas/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Atlas MCP server",
	Long: `Launch an MCP server on stdio that allows AI agents to analyze, save and
inspect team risk via standard tools.

Tools:
  analyze_team_risk - compute a risk score without saving it
  save_team_risk    - compute and persist a risk score
  get_risk_history  - list saved risk scores of a team
  get_risk_color    - display colors of a risk level`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
