package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// getDisplayNameForPipeline returns the display name with emoji for a pipeline.
func getDisplayNameForPipeline(name string) string {
	switch schema.Pipeline(name) {
	case schema.DormancyPipeline:
		return "💤 DORMANCY"
	case schema.ScoringPipeline:
		return "🎯 SCORING"
	case schema.ReversalPipeline:
		return "🔁 REVERSAL"
	default:
		return strings.ToUpper(name)
	}
}

// buildMetricsRenderModel constructs the render model from the active engine configuration.
func buildMetricsRenderModel(engine schema.EngineConfig) *schema.MetricsRenderModel {
	dw, pw := engine.DepthWeights, engine.PotentialWeights
	pipelines := []schema.PipelineModel{
		{
			Name:    string(schema.DormancyPipeline),
			Purpose: "Dormant lead classification - stage, reason, depth and reactivation potential",
			Factors: []string{"Stage", "Engagement", "Response", "Recoverability"},
			Weights: map[string]float64{
				"depth_stage":              dw.Stage,
				"depth_engagement":         dw.Engagement,
				"depth_response":           dw.Response,
				"potential_stage":          pw.Stage,
				"potential_recoverability": pw.Recoverability,
				"potential_engagement":     pw.Engagement,
			},
			Formula: fmt.Sprintf(
				"depth = %.2f*stage + %.2f*(1-engagement) + %.2f*(1-response); potential = %.2f*stage + %.2f*recoverability + %.2f*engagement",
				dw.Stage, dw.Engagement, dw.Response, pw.Stage, pw.Recoverability, pw.Engagement),
		},
		{
			Name:    string(schema.ScoringPipeline),
			Purpose: "Inbound lead routing - economic attractiveness of the lead",
			Factors: []string{"Intent", "Capacity", "Efficiency", "SourceTrust"},
			Formula: fmt.Sprintf("EAR = round(intent*capacity/efficiency), capped at %.0f; sales >= %.0f, nurture >= %.0f",
				schema.MaxEARScore, engine.Routing.Sales, engine.Routing.Nurture),
		},
		{
			Name:    string(schema.ReversalPipeline),
			Purpose: "Lost deal reversal - probability and strategy of re-opening",
			Factors: []string{"Trust", "Champion", "ExecutiveAccess", "LossReason", "Competitor", "Recency"},
			Formula: "probability = 0.30 + adjustments; estimated value = value*probability*0.8",
		},
	}

	return &schema.MetricsRenderModel{
		Title:          "Dealsense Decision Model",
		Description:    "All scores are clamped at the end of each computation",
		Pipelines:      pipelines,
		Stages:         engine.Stages,
		Routing:        engine.Routing,
		StageDelays:    engine.StageDelayDays,
		ReasonDelays:   engine.ReasonDelayDays,
		ReversalDelays: engine.ReversalDelay,
		Recoverability: engine.Recoverability,
		SourceTrust:    engine.SourceTrust,
	}
}

// PrintMetricsDefinitions displays the active thresholds, weights, delays and recoverability table.
// This is a static display that does not read any input.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(cfg.Engine)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, m *schema.MetricsRenderModel) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 %s\n", m.Title)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(m.Title)+3))
	fmt.Fprintf(&b, "%s\n\n", m.Description)

	for _, p := range m.Pipelines {
		fmt.Fprintf(&b, "%s: %s\n", getDisplayNameForPipeline(p.Name), p.Purpose)
		fmt.Fprintf(&b, "   Factors: %s\n", strings.Join(p.Factors, ", "))
		fmt.Fprintf(&b, "   Formula: %s\n\n", p.Formula)
	}

	fmt.Fprintf(&b, "🗓️  Stage thresholds (days): cooling <= %d, dormant <= %d, deep_dormant <= %d, hibernating <= %d, fossilized beyond\n\n",
		m.Stages.Cooling, m.Stages.Dormant, m.Stages.DeepDormant, m.Stages.Hibernating)

	b.WriteString("⏳ Stage delays (days)\n")
	for _, s := range schema.AllStages {
		fmt.Fprintf(&b, "   %-14s %d\n", s, m.StageDelays[s])
	}
	b.WriteString("\n⏳ Reason delays (days)\n")
	writeReasonInts(&b, m.ReasonDelays)
	b.WriteString("\n🔁 Reversal delays (days)\n")
	writeReasonInts(&b, m.ReversalDelays)

	b.WriteString("\n♻️  Recoverability\n")
	for _, r := range schema.AllReasons {
		fmt.Fprintf(&b, "   %-24s %.2f\n", r, m.Recoverability[r])
	}

	b.WriteString("\n🤝 Source trust\n")
	for _, src := range sortedKeys(m.SourceTrust) {
		fmt.Fprintf(&b, "   %-14s %.2f\n", src, m.SourceTrust[src])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeReasonInts(b *strings.Builder, values map[schema.Reason]int) {
	for _, r := range schema.AllReasons {
		if v, ok := values[r]; ok {
			fmt.Fprintf(b, "   %-24s %d\n", r, v)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// writeMetricsCSV writes the pipeline definitions in CSV format.
func writeMetricsCSV(w io.Writer, m *schema.MetricsRenderModel) error {
	return writeCSVWithHeader(w, []string{"pipeline", "purpose", "factors", "formula"}, func(cw *csv.Writer) error {
		for _, p := range m.Pipelines {
			if err := cw.Write([]string{p.Name, p.Purpose, joinStrings(p.Factors), p.Formula}); err != nil {
				return eris.Wrap(err, "failed to write CSV record")
			}
		}
		return nil
	})
}
