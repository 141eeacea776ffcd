package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// weightsCmd prints the scoring model.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the risk factor weights and level bands",
	Long: `Display the fixed weights of the four risk factors, their defaults when data
is missing, and the score range of each risk level.

Examples:
  atlas weights
  atlas weights --output json`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeights(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to print weights", err)
		}
	},
}
