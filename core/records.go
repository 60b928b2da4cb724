package core

import (
	"encoding/json"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
)

// payloadOf serializes a result for the decision record. Results are plain data,
// so a failure here indicates a programming error and leaves the payload empty.
func payloadOf(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		contract.LogWarn("Failed to serialize decision payload", err)
		return ""
	}
	return string(b)
}

func dormancyRecords(results []schema.Classification) []schema.DecisionRecord {
	records := make([]schema.DecisionRecord, len(results))
	for i, c := range results {
		records[i] = schema.DecisionRecord{
			Pipeline:    schema.DormancyPipeline,
			EntityID:    c.EntityID,
			DecidedAt:   c.ClassifiedAt,
			Label:       string(c.Stage),
			Reason:      string(c.PrimaryReason),
			Score:       c.Depth,
			Secondary:   c.ReactivationPotential,
			PayloadJSON: payloadOf(c),
		}
	}
	return records
}

func scoringRecords(results []schema.ScoreResult) []schema.DecisionRecord {
	records := make([]schema.DecisionRecord, len(results))
	for i, r := range results {
		records[i] = schema.DecisionRecord{
			Pipeline:    schema.ScoringPipeline,
			EntityID:    r.EntityID,
			DecidedAt:   r.ScoredAt,
			Label:       string(r.RoutingDecision),
			Reason:      r.EconomicPotential,
			Score:       r.EARScore,
			Secondary:   r.IntentScore,
			PayloadJSON: payloadOf(r),
		}
	}
	return records
}

func reversalRecords(results []schema.ReversalOpportunity) []schema.DecisionRecord {
	records := make([]schema.DecisionRecord, len(results))
	for i, r := range results {
		records[i] = schema.DecisionRecord{
			Pipeline:    schema.ReversalPipeline,
			EntityID:    r.DealID,
			DecidedAt:   r.AnalyzedAt,
			Label:       r.PrimaryStrategy,
			Reason:      string(r.LossReason),
			Score:       r.ReversalProbability,
			Secondary:   r.ConfidenceLevel,
			PayloadJSON: payloadOf(r),
		}
	}
	return records
}
