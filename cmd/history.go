package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd lists persisted risk scores.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the saved risk scores of a team",
	Long: `Show the risk scores saved with 'atlas analyze --save' for a team, newest first.

Examples:
  # Last 10 scores
  atlas history --team payments

  # Last 50 scores as CSV
  atlas history --team payments --limit 50 --output csv

  # Full history for BI tools
  atlas history --team payments --limit 1000 --output parquet --output-file payments.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to load risk history", err)
		}
	},
}
