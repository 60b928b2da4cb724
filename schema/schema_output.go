package schema

// EnrichedClassification adds presentation data to a Classification.
type EnrichedClassification struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Classification
}

// EnrichedScoreResult adds presentation data to a ScoreResult.
type EnrichedScoreResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoreResult
}

// EnrichedReversal adds presentation data to a ReversalOpportunity.
type EnrichedReversal struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ReversalOpportunity
}

// Priority label values.
const (
	CriticalValue = "Critical"
	HighValue     = "High"
	ModerateValue = "Moderate"
	LowValue      = "Low"
)

// GetPlainLabel returns a plain text label indicating the priority level
// based on a score on the 0-100 scale.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return CriticalValue
	case score >= 60:
		return HighValue
	case score >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// EnrichClassifications adds rank and label to classifications, labeled by reactivation potential.
func EnrichClassifications(results []Classification) []EnrichedClassification {
	output := make([]EnrichedClassification, len(results))
	for i, r := range results {
		output[i] = EnrichedClassification{
			Rank:           i + 1,
			Label:          GetPlainLabel(r.ReactivationPotential * 100),
			Classification: r,
		}
	}
	return output
}

// EnrichScoreResults adds rank and label to score results, labeled by EAR score.
func EnrichScoreResults(results []ScoreResult) []EnrichedScoreResult {
	output := make([]EnrichedScoreResult, len(results))
	for i, r := range results {
		output[i] = EnrichedScoreResult{
			Rank:        i + 1,
			Label:       GetPlainLabel(r.EARScore),
			ScoreResult: r,
		}
	}
	return output
}

// EnrichReversals adds rank and label to reversal opportunities, labeled by probability.
func EnrichReversals(results []ReversalOpportunity) []EnrichedReversal {
	output := make([]EnrichedReversal, len(results))
	for i, r := range results {
		output[i] = EnrichedReversal{
			Rank:                i + 1,
			Label:               GetPlainLabel(r.ReversalProbability * 100),
			ReversalOpportunity: r,
		}
	}
	return output
}
