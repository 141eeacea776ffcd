package cmd

import (
	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce a risk threshold for CI/CD pipelines (fails on violations)",
	Long: `Analyze a team sprint and fail with a non-zero exit code when its risk is too high.

The check fails when the overall score is at or above --threshold, or when
--max-level is set and the risk level is above it.

Default threshold: 50

Use cases:
- Release gates - block a release while the sprint is at high risk
- Planning reviews - flag sprints that need attention
- Scheduled jobs - alert when a team crosses a risk level

Examples:
  # Fail when the score is 50 or more
  atlas check --team payments --sprint S20

  # Custom threshold
  atlas check --team payments --sprint S20 --threshold 75

  # Only allow LOW and MODERATE risk
  atlas check --team payments --sprint S20 --threshold 100 --max-level moderate`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Risk check failed", err)
		}
	},
}
