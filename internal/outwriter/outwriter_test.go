package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Workers:         2,
		Precision:       2,
		Output:          output,
		Width:           120,
		AnalysisBackend: schema.NoneBackend,
		Engine:          schema.DefaultEngineConfig(),
	}
}

// withOutputFile points the config at a temp file and returns a reader for it.
func withOutputFile(t *testing.T, cfg *contract.Config, name string) func() string {
	t.Helper()
	cfg.OutputFile = filepath.Join(t.TempDir(), name)
	return func() string {
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		return string(data)
	}
}

func sampleClassifications() []schema.Classification {
	window := schema.TimingWindow{Start: testNow.AddDate(0, 0, 5), Peak: testNow.AddDate(0, 0, 8), End: testNow.AddDate(0, 0, 12)}
	return []schema.Classification{
		{
			EntityID: "lead-a", Stage: schema.DormantStage, DaysSinceEngagement: 10,
			PrimaryReason: schema.BudgetConstraints, SecondaryReasons: []schema.Reason{schema.TimingMismatch},
			Depth: 0.42, ReactivationPotential: 0.81, OptimalWindow: window,
			Risks:    []schema.Risk{{Type: "competitor_adoption"}, {Type: "contact_moved_on"}},
			Approach: schema.Approach{Strategy: "value_reinforcement", Channel: schema.EmailChannel, Tone: schema.WarmTone, Intensity: schema.SoftIntensity},
		},
		{
			EntityID: "lead-b", Stage: schema.FossilizedStage, DaysSinceEngagement: 200,
			PrimaryReason: schema.UnknownReason, Depth: 0.9, ReactivationPotential: 0.1, OptimalWindow: window,
		},
	}
}

func TestPrintDormancyResults_Text(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	read := withOutputFile(t, cfg, "dormancy.txt")

	require.NoError(t, PrintDormancyResults(sampleClassifications(), cfg, 1500*time.Millisecond))
	out := read()

	assert.Contains(t, out, "lead-a")
	assert.Contains(t, out, "dormant")
	assert.Contains(t, out, "0.81")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "2024-06-06→2024-06-13")
	assert.Contains(t, out, "email/warm")
	assert.Contains(t, out, "Showing 2 dormant leads")
	assert.Contains(t, out, "Analysis backend: none")
}

func TestPrintDormancyResults_CSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	read := withOutputFile(t, cfg, "dormancy.csv")

	require.NoError(t, PrintDormancyResults(sampleClassifications(), cfg, time.Second))
	records, err := csv.NewReader(strings.NewReader(read())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, []string{"1", "lead-a", "dormant", "10", "budget_constraints", "timing_mismatch"}, records[1][:6])
	assert.Equal(t, "competitor_adoption|contact_moved_on", records[1][len(records[1])-1])
	assert.Equal(t, "Low", records[2][8])
}

func TestPrintDormancyResults_JSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	read := withOutputFile(t, cfg, "dormancy.json")

	require.NoError(t, PrintDormancyResults(sampleClassifications(), cfg, time.Second))
	var got []schema.EnrichedClassification
	require.NoError(t, json.Unmarshal([]byte(read()), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "Critical", got[0].Label)
	assert.Equal(t, schema.DormantStage, got[0].Stage)
}

func TestPrintDormancyResults_Parquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.Error(t, PrintDormancyResults(sampleClassifications(), cfg, time.Second), "parquet needs an output file")

	withOutputFile(t, cfg, "dormancy.parquet")
	require.NoError(t, PrintDormancyResults(sampleClassifications(), cfg, time.Second))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func sampleScores() []schema.ScoreResult {
	return []schema.ScoreResult{
		{
			EntityID: "lead-hot", IntentScore: 80, CapacityScore: 70, EfficiencyScore: 40, EARScore: 140,
			RoutingDecision: schema.SalesRouting, EconomicPotential: "mid_market", SourceTrustWeight: 0.9,
			RiskFlags: []string{schema.MissingPhoneFlag}, RoutingReasoning: "EAR 140 meets the sales threshold",
		},
		{EntityID: "lead-cold", EARScore: 5, RoutingDecision: schema.RejectRouting, EconomicPotential: "unknown", RiskFlags: []string{}},
	}
}

func TestPrintScoreResults(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		read := withOutputFile(t, cfg, "score.txt")
		require.NoError(t, PrintScoreResults(sampleScores(), cfg, time.Second))
		out := read()
		assert.Contains(t, out, "lead-hot")
		assert.Contains(t, out, "140.00")
		assert.Contains(t, out, "sales")
		assert.Contains(t, out, "missing_phone")
		assert.Contains(t, out, "Showing 2 inbound leads")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		cfg.Precision = 0
		read := withOutputFile(t, cfg, "score.csv")
		require.NoError(t, PrintScoreResults(sampleScores(), cfg, time.Second))
		records, err := csv.NewReader(strings.NewReader(read())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "140", records[1][5])
		assert.Equal(t, "sales", records[1][7])
		assert.Equal(t, "EAR 140 meets the sales threshold", records[1][11])
		assert.Equal(t, "reject", records[2][7])
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		read := withOutputFile(t, cfg, "score.json")
		require.NoError(t, PrintScoreResults(sampleScores(), cfg, time.Second))
		var got []schema.EnrichedScoreResult
		require.NoError(t, json.Unmarshal([]byte(read()), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Critical", got[0].Label)
		assert.Equal(t, 2, got[1].Rank)
	})
}

func sampleReversals() []schema.ReversalOpportunity {
	return []schema.ReversalOpportunity{{
		DealID: "deal-1", LossReason: schema.BudgetConstraints, ReversalProbability: 0.65,
		OptimalTiming:         schema.TimingWindow{Start: testNow.AddDate(0, 0, 21), Peak: testNow.AddDate(0, 0, 24), End: testNow.AddDate(0, 0, 28)},
		PrimaryStrategy:       "budget_cycle_reentry",
		AlternativeStrategies: []string{"phased_rollout", "roi_reframe"},
		TriggerEvents:         []string{"new_fiscal_year"},
		ReentryApproach:       schema.ReentryApproach{Contact: "champion", Channel: schema.EmailChannel},
		EstimatedValue:        26000, ConfidenceLevel: 0.7,
	}}
}

func TestPrintReversalResults(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		read := withOutputFile(t, cfg, "reversal.txt")
		require.NoError(t, PrintReversalResults(sampleReversals(), cfg, time.Second))
		out := read()
		assert.Contains(t, out, "deal-1")
		assert.Contains(t, out, "budget_cycle_reentry")
		assert.Contains(t, out, "High")
		assert.Contains(t, out, "26000.00")
		assert.Contains(t, out, "Showing 1 lost deals")
	})

	t.Run("narrow text keeps strategy names whole", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		cfg.Width = 80
		read := withOutputFile(t, cfg, "reversal_narrow.txt")
		deals := sampleReversals()
		deals[0].DealID = "deal-with-a-very-long-crm-identifier"
		deals[0].PrimaryStrategy = "competitive_displacement"
		require.NoError(t, PrintReversalResults(deals, cfg, time.Second))
		out := read()
		assert.Contains(t, out, "competitive_displacement")
		assert.Contains(t, out, "deal-with-a-...")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		read := withOutputFile(t, cfg, "reversal.csv")
		require.NoError(t, PrintReversalResults(sampleReversals(), cfg, time.Second))
		records, err := csv.NewReader(strings.NewReader(read())).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "phased_rollout|roi_reframe", records[1][6])
		assert.Equal(t, "2024-06-22", records[1][7])
		assert.Equal(t, "new_fiscal_year", records[1][12])
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut)
		withOutputFile(t, cfg, "reversal.parquet")
		require.NoError(t, PrintReversalResults(sampleReversals(), cfg, time.Second))
	})
}

func TestPrintOutcome(t *testing.T) {
	outcome := schema.ReversalOutcome{ID: "o-1", DealID: "deal-1", Outcome: schema.WonOutcome, Revenue: 1200, RecordedAt: testNow}

	cfg := testConfig(t, schema.TextOut)
	read := withOutputFile(t, cfg, "outcome.txt")
	require.NoError(t, PrintOutcome(outcome, cfg))
	assert.Contains(t, read(), "Recorded won for deal deal-1")

	cfg = testConfig(t, schema.JSONOut)
	read = withOutputFile(t, cfg, "outcome.json")
	require.NoError(t, PrintOutcome(outcome, cfg))
	var got schema.ReversalOutcome
	require.NoError(t, json.Unmarshal([]byte(read()), &got))
	assert.Equal(t, outcome.DealID, got.DealID)

	cfg = testConfig(t, schema.CSVOut)
	read = withOutputFile(t, cfg, "outcome.csv")
	require.NoError(t, PrintOutcome(outcome, cfg))
	assert.Contains(t, read(), "o-1,deal-1,won,,1200.00,,2024-06-01T12:00:00Z")
}

func TestPrintMetricsDefinitions(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	cfg.Engine.Routing.Sales = 90
	read := withOutputFile(t, cfg, "metrics.txt")

	require.NoError(t, PrintMetricsDefinitions(cfg))
	out := read()
	assert.Contains(t, out, "DORMANCY")
	assert.Contains(t, out, "sales >= 90")
	assert.Contains(t, out, "cooling <= 7")
	assert.Contains(t, out, "referral")

	cfg.Output = schema.JSONOut
	read = withOutputFile(t, cfg, "metrics.json")
	require.NoError(t, PrintMetricsDefinitions(cfg))
	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal([]byte(read()), &model))
	assert.Len(t, model.Pipelines, 3)
	assert.Equal(t, 90.0, model.Routing.Sales)

	cfg.Output = schema.CSVOut
	read = withOutputFile(t, cfg, "metrics.csv")
	require.NoError(t, PrintMetricsDefinitions(cfg))
	assert.True(t, strings.HasPrefix(read(), "pipeline,purpose,factors,formula"))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	cfg := &contract.Config{Width: 200}
	assert.Equal(t, 60, getMaxTableTextWidth(cfg, 50))

	cfg.Width = 100
	assert.Equal(t, 30, getMaxTableTextWidth(cfg, 50))

	cfg.Width = 40
	assert.Equal(t, 15, getMaxTableTextWidth(cfg, 50))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
