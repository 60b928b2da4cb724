package cmd

import (
	"github.com/huangsam/dealsense/core"
	"github.com/huangsam/dealsense/schema"
	"github.com/spf13/cobra"
)

// outcomeCmd groups the reversal outcome feedback commands.
var outcomeCmd = &cobra.Command{
	Use:   "outcome",
	Short: "Record what happened after a reversal attempt",
	Long: `Manage append-only feedback about reversal attempts.

Outcomes are stored in the analysis backend next to the decisions that
suggested them, and published to the decision stream when one is configured.

Subcommands:
  record - Append an outcome for a lost deal`,
}

// outcomeRecordCmd appends one reversal outcome.
var outcomeRecordCmd = &cobra.Command{
	Use:   "record <deal-id>",
	Short: "Append the outcome of a reversal attempt for a deal",
	Long: `Append a reversal outcome for a deal. Outcomes are never updated or deleted.

Requires an analysis backend other than none.

Examples:
  # Record a won deal
  dealsense outcome record deal-42 --outcome won --strategy budget_cycle_reentry --revenue 48000 --analysis-backend sqlite

  # Record that the contact never answered
  dealsense outcome record deal-7 --outcome no_response --notes "three emails, no reply" --analysis-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		kind, _ := flags.GetString("outcome")
		strategy, _ := flags.GetString("strategy")
		revenue, _ := flags.GetFloat64("revenue")
		notes, _ := flags.GetString("notes")
		id, _ := flags.GetString("id")

		outcome := schema.ReversalOutcome{
			ID:           id,
			DealID:       args[0],
			Outcome:      schema.OutcomeKind(kind),
			StrategyUsed: strategy,
			Revenue:      revenue,
			Notes:        notes,
		}
		if err := core.ExecuteOutcome(rootCtx, cfg, storeManager, outcome); err != nil {
			fatal("Cannot record outcome", err)
		}
	},
}
