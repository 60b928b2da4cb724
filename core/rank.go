package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/dealsense/schema"
)

// rankClassifications sorts classifications by reactivation potential in descending order.
// Ties keep input order.
func rankClassifications(results []schema.Classification) []schema.Classification {
	slices.SortStableFunc(results, func(a, b schema.Classification) int {
		return cmp.Compare(b.ReactivationPotential, a.ReactivationPotential)
	})
	return results
}

// rankScoreResults sorts score results by EAR score in descending order.
func rankScoreResults(results []schema.ScoreResult) []schema.ScoreResult {
	slices.SortStableFunc(results, func(a, b schema.ScoreResult) int {
		return cmp.Compare(b.EARScore, a.EARScore)
	})
	return results
}

// rankReversals sorts reversal opportunities by estimated value, then probability.
func rankReversals(results []schema.ReversalOpportunity) []schema.ReversalOpportunity {
	slices.SortStableFunc(results, func(a, b schema.ReversalOpportunity) int {
		if c := cmp.Compare(b.EstimatedValue, a.EstimatedValue); c != 0 {
			return c
		}
		return cmp.Compare(b.ReversalProbability, a.ReversalProbability)
	})
	return results
}
