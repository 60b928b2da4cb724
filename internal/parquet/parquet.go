// Package parquet provides data structures and functions for exporting dealsense
// decisions to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"
)

// DecisionRun represents a single batch run of one decision pipeline.
// This struct maps to the dealsense_decision_runs database table.
type DecisionRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Pipeline is dormancy, scoring or reversal
	Pipeline string `parquet:"pipeline,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalEntities is the number of entities submitted to the run
	TotalEntities int32 `parquet:"total_entities,snappy"`

	// TotalFailed is the number of entities rejected as invalid
	TotalFailed int32 `parquet:"total_failed,snappy"`

	// ConfigParams contains the JSON-encoded engine parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Decision represents one decision produced by a run.
// This struct maps to the dealsense_decisions database table.
type Decision struct {
	RunID     int64     `parquet:"run_id,snappy"`
	Pipeline  string    `parquet:"pipeline,snappy"`
	EntityID  string    `parquet:"entity_id,snappy"`
	DecidedAt time.Time `parquet:"decided_at,snappy"`
	Label     string    `parquet:"label,snappy"`
	Reason    string    `parquet:"reason,snappy"`
	Score     float64   `parquet:"score,snappy"`
	Secondary float64   `parquet:"secondary_score,snappy"`
	Payload   string    `parquet:"payload,snappy"`
}

// ReversalOutcome represents one entry of the reversal outcome log.
// This struct maps to the dealsense_reversal_outcomes database table.
type ReversalOutcome struct {
	OutcomeID    string    `parquet:"outcome_id,snappy"`
	DealID       string    `parquet:"deal_id,snappy"`
	Outcome      string    `parquet:"outcome,snappy"`
	StrategyUsed *string   `parquet:"strategy_used,optional,snappy"`
	Revenue      float64   `parquet:"revenue,snappy"`
	Notes        *string   `parquet:"notes,optional,snappy"`
	RecordedAt   time.Time `parquet:"recorded_at,snappy"`
}

// Classification is the flattened output row of the dormancy pipeline.
type Classification struct {
	Rank                  int32     `parquet:"rank,snappy"`
	EntityID              string    `parquet:"entity_id,snappy"`
	Stage                 string    `parquet:"stage,snappy"`
	DaysSinceEngagement   int32     `parquet:"days_since_engagement,snappy"`
	PrimaryReason         string    `parquet:"primary_reason,snappy"`
	SecondaryReasons      []string  `parquet:"secondary_reasons"`
	Depth                 float64   `parquet:"depth,snappy"`
	ReactivationPotential float64   `parquet:"reactivation_potential,snappy"`
	WindowStart           time.Time `parquet:"window_start,snappy"`
	WindowPeak            time.Time `parquet:"window_peak,snappy"`
	WindowEnd             time.Time `parquet:"window_end,snappy"`
	Strategy              string    `parquet:"strategy,snappy"`
	Channel               string    `parquet:"channel,snappy"`
	Tone                  string    `parquet:"tone,snappy"`
	Intensity             string    `parquet:"intensity,snappy"`
	RiskCount             int32     `parquet:"risk_count,snappy"`
	ClassifiedAt          time.Time `parquet:"classified_at,snappy"`
}

// ScoreResult is the flattened output row of the scoring pipeline.
type ScoreResult struct {
	Rank              int32     `parquet:"rank,snappy"`
	EntityID          string    `parquet:"entity_id,snappy"`
	IntentScore       float64   `parquet:"intent_score,snappy"`
	CapacityScore     float64   `parquet:"capacity_score,snappy"`
	EfficiencyScore   float64   `parquet:"efficiency_score,snappy"`
	EARScore          float64   `parquet:"ear_score,snappy"`
	RoutingDecision   string    `parquet:"routing_decision,snappy"`
	SourceTrustWeight float64   `parquet:"source_trust_weight,snappy"`
	EconomicPotential string    `parquet:"economic_potential,snappy"`
	RiskFlags         []string  `parquet:"risk_flags"`
	ScoredAt          time.Time `parquet:"scored_at,snappy"`
}

// Reversal is the flattened output row of the reversal pipeline.
type Reversal struct {
	Rank                int32     `parquet:"rank,snappy"`
	DealID              string    `parquet:"deal_id,snappy"`
	LossReason          string    `parquet:"loss_reason,snappy"`
	ReversalProbability float64   `parquet:"reversal_probability,snappy"`
	PrimaryStrategy     string    `parquet:"primary_strategy,snappy"`
	TimingStart         time.Time `parquet:"timing_start,snappy"`
	TimingPeak          time.Time `parquet:"timing_peak,snappy"`
	TimingEnd           time.Time `parquet:"timing_end,snappy"`
	ReentryContact      string    `parquet:"reentry_contact,snappy"`
	ReentryChannel      string    `parquet:"reentry_channel,snappy"`
	EstimatedValue      float64   `parquet:"estimated_value,snappy"`
	ConfidenceLevel     float64   `parquet:"confidence_level,snappy"`
	AnalyzedAt          time.Time `parquet:"analyzed_at,snappy"`
}

// writeRows writes rows to a new Parquet file using struct schema inference.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "failed to create output file")
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return eris.Wrap(err, "failed to write data to parquet file")
	}
	if err := writer.Close(); err != nil {
		return eris.Wrap(err, "failed to finalize parquet file")
	}
	return file.Close()
}

// WriteDecisionRunsParquet writes decision runs to a Parquet file.
func WriteDecisionRunsParquet(data []DecisionRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteDecisionsParquet writes decision records to a Parquet file.
func WriteDecisionsParquet(data []Decision, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteReversalOutcomesParquet writes the outcome log to a Parquet file.
func WriteReversalOutcomesParquet(data []ReversalOutcome, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteClassificationsParquet writes dormancy results to a Parquet file.
func WriteClassificationsParquet(data []Classification, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteScoreResultsParquet writes scoring results to a Parquet file.
func WriteScoreResultsParquet(data []ScoreResult, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteReversalsParquet writes reversal results to a Parquet file.
func WriteReversalsParquet(data []Reversal, outputPath string) error {
	return writeRows(data, outputPath)
}
