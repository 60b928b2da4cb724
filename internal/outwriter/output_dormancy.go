package outwriter

import (
	"encoding/csv"
	"fmt"
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

// PrintDormancyResults outputs ranked classifications, dispatching on the configured format.
func PrintDormancyResults(results []schema.Classification, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichClassifications(results)
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, enriched)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDormancyCSV(w, enriched, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteClassificationsParquet(parquet.ConvertClassifications(enriched), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDormancyTable(w, enriched, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeDormancyTable generates and writes the human-readable table.
func writeDormancyTable(w io.Writer, results []schema.EnrichedClassification, cfg *contract.Config,
	fmtFloat func(float64) string, intFmt string, duration time.Duration,
) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Lead", "Stage", "Days", "Reason", "Depth", "Potential", "Label", "Window", "Approach"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := getMaxTableTextWidth(cfg, 110)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.EntityID, textWidth),
			string(r.Stage),
			fmt.Sprintf(intFmt, r.DaysSinceEngagement),
			string(r.PrimaryReason),
			fmtFloat(r.Depth),
			fmtFloat(r.ReactivationPotential),
			contract.ColorizeLabel(r.Label),
			formatWindow(r.OptimalWindow),
			fmt.Sprintf("%s/%s", r.Approach.Channel, r.Approach.Tone),
		})
	}

	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "failed to build table")
	}
	if err := table.Render(); err != nil {
		return eris.Wrap(err, "failed to render table")
	}
	return writeSummary(w, "dormant leads", len(results), cfg, duration)
}

// writeDormancyCSV writes classifications in CSV format.
func writeDormancyCSV(w io.Writer, results []schema.EnrichedClassification, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank", "lead", "stage", "days_since_engagement", "primary_reason", "secondary_reasons",
		"depth", "reactivation_potential", "label", "window_start", "window_peak", "window_end",
		"strategy", "channel", "tone", "intensity", "risks",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			risks := make([]string, len(r.Risks))
			for i, risk := range r.Risks {
				risks[i] = risk.Type
			}
			rec := []string{
				strconv.Itoa(r.Rank),
				r.EntityID,
				string(r.Stage),
				fmt.Sprintf(intFmt, r.DaysSinceEngagement),
				string(r.PrimaryReason),
				joinReasons(r.SecondaryReasons),
				fmtFloat(r.Depth),
				fmtFloat(r.ReactivationPotential),
				r.Label,
				r.OptimalWindow.Start.Format(dateFormat),
				r.OptimalWindow.Peak.Format(dateFormat),
				r.OptimalWindow.End.Format(dateFormat),
				r.Approach.Strategy,
				string(r.Approach.Channel),
				string(r.Approach.Tone),
				string(r.Approach.Intensity),
				joinStrings(risks),
			}
			if err := cw.Write(rec); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
		return nil
	})
}
