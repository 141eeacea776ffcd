package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd computes the risk of one team sprint.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the delivery risk of a team for one sprint",
	Long: `Read the confidence votes, metrics and objectives of a team sprint and
compute its overall risk score (0-100), risk level and recommendations.

The score is a weighted sum of four factors:
- Confidence (35%) - average of the 1-5 confidence votes
- Velocity (25%) - declining trend of the latest velocity metrics
- Throughput (20%) - throughput and completion rate metrics
- Objectives (20%) - health of the sprint objectives

Missing data never fails the analysis: each factor has a neutral default.
Run 'atlas weights' to see the exact formula.

Examples:
  # Analyze a sprint
  atlas analyze --team payments --sprint S20

  # Analyze and keep the result in the history
  atlas analyze --team payments --sprint S20 --save

  # Machine-readable output
  atlas analyze --team payments --sprint S20 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Risk analysis failed", err)
		}
	},
}
