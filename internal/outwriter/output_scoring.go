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

// PrintScoreResults outputs ranked score results, dispatching on the configured format.
func PrintScoreResults(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichScoreResults(results)
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, enriched)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreCSV(w, enriched, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteScoreResultsParquet(parquet.ConvertScoreResults(enriched), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(w, enriched, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(w io.Writer, results []schema.EnrichedScoreResult, cfg *contract.Config,
	fmtFloat func(float64) string, duration time.Duration,
) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Lead", "Intent", "Capacity", "Efficiency", "EAR", "Route", "Potential", "Flags"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := getMaxTableTextWidth(cfg, 90)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.EntityID, textWidth),
			fmtFloat(r.IntentScore),
			fmtFloat(r.CapacityScore),
			fmtFloat(r.EfficiencyScore),
			fmtFloat(r.EARScore),
			contract.ColorizeRouting(r.RoutingDecision),
			r.EconomicPotential,
			contract.TruncateText(joinStrings(r.RiskFlags), textWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "failed to build table")
	}
	if err := table.Render(); err != nil {
		return eris.Wrap(err, "failed to render table")
	}
	return writeSummary(w, "inbound leads", len(results), cfg, duration)
}

// writeScoreCSV writes score results in CSV format.
func writeScoreCSV(w io.Writer, results []schema.EnrichedScoreResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank", "lead", "intent_score", "capacity_score", "efficiency_score", "ear_score",
		"label", "routing_decision", "source_trust_weight", "economic_potential", "risk_flags", "reasoning",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.EntityID,
				fmtFloat(r.IntentScore),
				fmtFloat(r.CapacityScore),
				fmtFloat(r.EfficiencyScore),
				fmtFloat(r.EARScore),
				r.Label,
				string(r.RoutingDecision),
				fmtFloat(r.SourceTrustWeight),
				r.EconomicPotential,
				joinStrings(r.RiskFlags),
				r.RoutingReasoning,
			}
			if err := cw.Write(rec); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
		return nil
	})
}
