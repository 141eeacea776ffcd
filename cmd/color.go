package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// colorCmd prints the presentation tokens of a risk level.
var colorCmd = &cobra.Command{
	Use:   "color <level>",
	Short: "Show the display colors of a risk level",
	Long: `Print the background, text and border color tokens used to display a risk level.
Unknown levels get the neutral gray tokens.

Examples:
  atlas color high
  atlas color CRITICAL --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteColor(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Failed to print color", err)
		}
	},
}
