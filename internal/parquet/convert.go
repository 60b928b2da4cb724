package parquet

import (
	"github.com/huangsam/dealsense/schema"
)

// ConvertDecisionRunRecords converts stored runs for Parquet export.
func ConvertDecisionRunRecords(records []schema.DecisionRunRecord) []DecisionRun {
	result := make([]DecisionRun, len(records))
	for i, record := range records {
		result[i] = DecisionRun{
			RunID:         record.RunID,
			Pipeline:      string(record.Pipeline),
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalEntities: record.TotalEntities,
			TotalFailed:   record.TotalFailed,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertDecisionRecords converts stored decisions for Parquet export.
func ConvertDecisionRecords(records []schema.DecisionRecord) []Decision {
	result := make([]Decision, len(records))
	for i, record := range records {
		result[i] = Decision{
			RunID:     record.RunID,
			Pipeline:  string(record.Pipeline),
			EntityID:  record.EntityID,
			DecidedAt: record.DecidedAt,
			Label:     record.Label,
			Reason:    record.Reason,
			Score:     record.Score,
			Secondary: record.Secondary,
			Payload:   record.PayloadJSON,
		}
	}
	return result
}

// ConvertReversalOutcomeRecords converts the stored outcome log for Parquet export.
func ConvertReversalOutcomeRecords(records []schema.ReversalOutcomeRecord) []ReversalOutcome {
	result := make([]ReversalOutcome, len(records))
	for i, record := range records {
		result[i] = ReversalOutcome{
			OutcomeID:    record.OutcomeID,
			DealID:       record.DealID,
			Outcome:      string(record.Outcome),
			StrategyUsed: record.StrategyUsed,
			Revenue:      record.Revenue,
			Notes:        record.Notes,
			RecordedAt:   record.RecordedAt,
		}
	}
	return result
}

// ConvertClassifications flattens ranked dormancy results.
func ConvertClassifications(results []schema.EnrichedClassification) []Classification {
	rows := make([]Classification, len(results))
	for i, r := range results {
		secondary := make([]string, len(r.SecondaryReasons))
		for j, reason := range r.SecondaryReasons {
			secondary[j] = string(reason)
		}
		rows[i] = Classification{
			Rank:                  int32(r.Rank),
			EntityID:              r.EntityID,
			Stage:                 string(r.Stage),
			DaysSinceEngagement:   int32(r.DaysSinceEngagement),
			PrimaryReason:         string(r.PrimaryReason),
			SecondaryReasons:      secondary,
			Depth:                 r.Depth,
			ReactivationPotential: r.ReactivationPotential,
			WindowStart:           r.OptimalWindow.Start,
			WindowPeak:            r.OptimalWindow.Peak,
			WindowEnd:             r.OptimalWindow.End,
			Strategy:              r.Approach.Strategy,
			Channel:               string(r.Approach.Channel),
			Tone:                  string(r.Approach.Tone),
			Intensity:             string(r.Approach.Intensity),
			RiskCount:             int32(len(r.Risks)),
			ClassifiedAt:          r.ClassifiedAt,
		}
	}
	return rows
}

// ConvertScoreResults flattens ranked scoring results.
func ConvertScoreResults(results []schema.EnrichedScoreResult) []ScoreResult {
	rows := make([]ScoreResult, len(results))
	for i, r := range results {
		rows[i] = ScoreResult{
			Rank:              int32(r.Rank),
			EntityID:          r.EntityID,
			IntentScore:       r.IntentScore,
			CapacityScore:     r.CapacityScore,
			EfficiencyScore:   r.EfficiencyScore,
			EARScore:          r.EARScore,
			RoutingDecision:   string(r.RoutingDecision),
			SourceTrustWeight: r.SourceTrustWeight,
			EconomicPotential: r.EconomicPotential,
			RiskFlags:         r.RiskFlags,
			ScoredAt:          r.ScoredAt,
		}
	}
	return rows
}

// ConvertReversals flattens ranked reversal results.
func ConvertReversals(results []schema.EnrichedReversal) []Reversal {
	rows := make([]Reversal, len(results))
	for i, r := range results {
		rows[i] = Reversal{
			Rank:                int32(r.Rank),
			DealID:              r.DealID,
			LossReason:          string(r.LossReason),
			ReversalProbability: r.ReversalProbability,
			PrimaryStrategy:     r.PrimaryStrategy,
			TimingStart:         r.OptimalTiming.Start,
			TimingPeak:          r.OptimalTiming.Peak,
			TimingEnd:           r.OptimalTiming.End,
			ReentryContact:      r.ReentryApproach.Contact,
			ReentryChannel:      string(r.ReentryApproach.Channel),
			EstimatedValue:      r.EstimatedValue,
			ConfidenceLevel:     r.ConfidenceLevel,
			AnalyzedAt:          r.AnalyzedAt,
		}
	}
	return rows
}
