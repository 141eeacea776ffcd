package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd bulk loads team data.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load votes, metrics and objectives from a YAML or JSON file",
	Long: `Bulk load team data into the store. Files ending in .json are read as JSON,
everything else as YAML. Records without team_id or sprint take --team and --sprint.

The whole file is validated before anything is written.

Example file:
  votes:
    - confidence_level: 4
  metrics:
    - metric_type: velocity
      value: 30
      target: 40
  objectives:
    - title: Ship refunds
      status: in_progress

Examples:
  atlas import sprint.yaml --team payments --sprint S20
  atlas import export.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImport(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Import failed", err)
		}
	},
}
