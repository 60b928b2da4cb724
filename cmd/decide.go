package cmd

import (
	"github.com/huangsam/dealsense/core"
	"github.com/spf13/cobra"
)

// dormancyCmd classifies dormant leads.
var dormancyCmd = &cobra.Command{
	Use:   "dormancy <file|->",
	Short: "Classify dormant leads and plan their re-engagement.",
	Long: `Classify each dormant lead by how long it has been silent and why it went quiet.

For every lead this reports:
- Dormancy stage (cooling, dormant, deep_dormant, hibernating, fossilized)
- Primary and secondary dormancy reasons with their evidence scores
- Dormancy depth and reactivation potential
- A recommended re-engagement window with periods to avoid
- Risks and an outreach approach (channel, tone, intensity, framing)

The input is a JSON or YAML document holding a list of leads, an object
with a "leads" list, or a single lead. Use "-" to read from stdin.

Examples:
  # Classify a batch of leads
  dealsense dormancy leads.json

  # Reproduce a past decision with a fixed clock
  dealsense dormancy leads.yaml --now 2024-06-01T12:00:00Z

  # Track decisions and export them for BI
  dealsense dormancy leads.json --analysis-backend sqlite --output parquet --output-file dormancy.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDormancy(rootCtx, cfg, storeManager); err != nil {
			fatal("Cannot run dormancy classification", err)
		}
	},
}

// scoreCmd scores and routes inbound leads.
var scoreCmd = &cobra.Command{
	Use:   "score <file|->",
	Short: "Score inbound leads and route them to sales, nurture or disqualify.",
	Long: `Score each inbound lead on intent, capacity and efficiency, then route it.

The EAR score combines the three components with the trust weight of the
lead's source. Leads at or above the sales threshold go to sales, leads at or
above the nurture threshold go to nurture, and the rest are disqualified.

The input is a JSON or YAML document holding a list of leads, an object
with a "leads" list, or a single lead. Use "-" to read from stdin.

Examples:
  # Score a batch of leads
  dealsense score inbound.json

  # Try stricter routing thresholds
  dealsense score inbound.json --routing-override sales:120,nurture:60

  # Stream every decision to Kafka
  dealsense score inbound.json --publish-brokers localhost:9092`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScoring(rootCtx, cfg, storeManager); err != nil {
			fatal("Cannot run lead scoring", err)
		}
	},
}

// reversalCmd analyzes lost deals.
var reversalCmd = &cobra.Command{
	Use:   "reversal <file|->",
	Short: "Find lost deals worth reopening.",
	Long: `Analyze each lost deal for the chance and the best way to reopen it.

For every deal this reports:
- The loss reason, stated or inferred
- Reversal probability, confidence and estimated recoverable value
- A primary strategy with alternatives and trigger events to watch for
- When to re-engage and how (contact, channel, tone, opener)
- Risk factors

The input is a JSON or YAML document holding a list of deals, an object
with a "deals" list, or a single deal. Use "-" to read from stdin.

Examples:
  # Rank lost deals by recoverable value
  dealsense reversal lost.json

  # Export as CSV
  dealsense reversal lost.json --output csv --output-file reversal.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReversal(rootCtx, cfg, storeManager); err != nil {
			fatal("Cannot run reversal analysis", err)
		}
	},
}
