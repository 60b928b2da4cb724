package iocache

import (
	"fmt"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/parquet"
	"github.com/rotisserie/eris"
)

// ExecuteAnalysisExport exports runs, decisions and outcomes to Parquet files
// named after outputFile.
func ExecuteAnalysisExport(store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return eris.New("--output-file is required for export command")
	}
	if store == nil {
		return eris.New("export requires an analysis backend other than none")
	}

	status, err := store.GetStatus()
	if err != nil {
		return eris.Wrap(err, "failed to get analysis status")
	}
	if status.TotalRuns == 0 && status.TotalOutcomes == 0 {
		return eris.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total decision runs: %d\n", status.TotalRuns)
	fmt.Printf("Total decisions: %d\n", status.TotalDecisions)
	fmt.Printf("Total outcomes: %d\n", status.TotalOutcomes)

	runs, err := store.GetAllRuns()
	if err != nil {
		return eris.Wrap(err, "failed to retrieve decision runs")
	}
	decisions, err := store.GetAllDecisions()
	if err != nil {
		return eris.Wrap(err, "failed to retrieve decisions")
	}
	outcomes, err := store.GetAllOutcomes()
	if err != nil {
		return eris.Wrap(err, "failed to retrieve outcomes")
	}

	runRows := parquet.ConvertDecisionRunRecords(runs)
	runsFile := outputFile + ".decision_runs.parquet"
	if err := parquet.WriteDecisionRunsParquet(runRows, runsFile); err != nil {
		return eris.Wrap(err, "failed to write decision runs")
	}
	fmt.Printf("Exported %d decision runs to: %s\n", len(runRows), runsFile)

	decisionRows := parquet.ConvertDecisionRecords(decisions)
	decisionsFile := outputFile + ".decisions.parquet"
	if err := parquet.WriteDecisionsParquet(decisionRows, decisionsFile); err != nil {
		return eris.Wrap(err, "failed to write decisions")
	}
	fmt.Printf("Exported %d decisions to: %s\n", len(decisionRows), decisionsFile)

	outcomeRows := parquet.ConvertReversalOutcomeRecords(outcomes)
	outcomesFile := outputFile + ".reversal_outcomes.parquet"
	if err := parquet.WriteReversalOutcomesParquet(outcomeRows, outcomesFile); err != nil {
		return eris.Wrap(err, "failed to write outcomes")
	}
	fmt.Printf("Exported %d outcomes to: %s\n", len(outcomeRows), outcomesFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Spark, Arrow or Pandas.")
	return nil
}
