package cmd

import (
	"github.com/huangsam/dealsense/core"
	"github.com/spf13/cobra"
)

// metricsCmd displays the active decision tables.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the formulas, thresholds and tables behind every decision",
	Long: `Show the formulas, weights and tables each pipeline uses.

Provides complete transparency into how decisions are made, including:
- Pipeline purpose, factors, weights and formula
- Stage thresholds, weights and re-engagement delays
- EAR routing thresholds
- Reason and reversal delays
- Recoverability per reason and trust per lead source

Overrides from .dealsense.yaml are applied, so this is also the way to
check a per-org configuration before using it.

Examples:
  # Show the stock tables
  dealsense metrics

  # View with overrides from a config file
  dealsense metrics --config acme.yaml --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, storeManager); err != nil {
			fatal("Cannot display metrics", err)
		}
	},
}
