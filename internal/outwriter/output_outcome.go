package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
)

// PrintOutcome confirms a recorded reversal outcome.
func PrintOutcome(outcome schema.ReversalOutcome, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, outcome)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "deal_id", "outcome", "strategy_used", "revenue", "notes", "recorded_at"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					outcome.ID, outcome.DealID, string(outcome.Outcome), outcome.StrategyUsed,
					fmtFloat(outcome.Revenue), outcome.Notes, outcome.RecordedAt.Format(contract.DateTimeFormat),
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✅ Recorded %s for deal %s (revenue %s, id %s)\n",
				outcome.Outcome, outcome.DealID, fmtFloat(outcome.Revenue), outcome.ID)
			return err
		}, "Wrote text")
	}
}
