package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/parquet"
	"github.com/huangsam/dealsense/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"
)

// PrintReversalResults outputs ranked reversal opportunities, dispatching on the configured format.
func PrintReversalResults(results []schema.ReversalOpportunity, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichReversals(results)
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, enriched)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReversalCSV(w, enriched, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteReversalsParquet(parquet.ConvertReversals(enriched), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReversalTable(w, enriched, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeReversalTable generates and writes the human-readable table.
func writeReversalTable(w io.Writer, results []schema.EnrichedReversal, cfg *contract.Config,
	fmtFloat func(float64) string, duration time.Duration,
) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Deal", "Reason", "Probability", "Label", "Strategy", "Window", "Est. Value", "Confidence"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := getMaxTableTextWidth(cfg, 100)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.DealID, textWidth),
			string(r.LossReason),
			fmtFloat(r.ReversalProbability),
			contract.ColorizeLabel(r.Label),
			r.PrimaryStrategy,
			formatWindow(r.OptimalTiming),
			fmtFloat(r.EstimatedValue),
			fmtFloat(r.ConfidenceLevel),
		})
	}

	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "failed to build table")
	}
	if err := table.Render(); err != nil {
		return eris.Wrap(err, "failed to render table")
	}
	return writeSummary(w, "lost deals", len(results), cfg, duration)
}

// writeReversalCSV writes reversal opportunities in CSV format.
func writeReversalCSV(w io.Writer, results []schema.EnrichedReversal, fmtFloat func(float64) string) error {
	header := []string{
		"rank", "deal", "loss_reason", "reversal_probability", "label", "primary_strategy",
		"alternative_strategies", "timing_start", "timing_peak", "timing_end",
		"reentry_contact", "reentry_channel", "trigger_events", "estimated_value", "confidence_level",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.DealID,
				string(r.LossReason),
				fmtFloat(r.ReversalProbability),
				r.Label,
				r.PrimaryStrategy,
				joinStrings(r.AlternativeStrategies),
				r.OptimalTiming.Start.Format(dateFormat),
				r.OptimalTiming.Peak.Format(dateFormat),
				r.OptimalTiming.End.Format(dateFormat),
				r.ReentryApproach.Contact,
				string(r.ReentryApproach.Channel),
				joinStrings(r.TriggerEvents),
				fmtFloat(r.EstimatedValue),
				fmtFloat(r.ConfidenceLevel),
			}
			if err := cw.Write(rec); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
		return nil
	})
}
