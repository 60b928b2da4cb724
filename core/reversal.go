package core

import (
	"strings"

	"github.com/huangsam/dealsense/core/algo"
	"github.com/huangsam/dealsense/schema"
)

// AnalyzeLostDeal estimates whether a lost deal can be won back and plans the re-entry.
func (e *Engine) AnalyzeLostDeal(deal schema.LostDeal) (schema.ReversalOpportunity, error) {
	if err := deal.Validate(); err != nil {
		return schema.ReversalOpportunity{}, err
	}
	now := e.now()

	reasons := algo.DealReasons(deal)
	reason := reasons.Primary
	probability := algo.ReversalProbability(deal, now)
	timing := algo.ReversalWindow(now, deal, reason, e.cfg)
	risks := algo.DealRisks(deal)
	strategy := algo.ReversalStrategy(reason, strings.TrimSpace(deal.CompetitorName) != "")

	return schema.ReversalOpportunity{
		DealID:                deal.ID,
		LossReason:            reason,
		ReversalProbability:   probability,
		OptimalTiming:         timing,
		PrimaryStrategy:       strategy,
		AlternativeStrategies: algo.AlternativeStrategies(strategy, reasons.Secondary),
		TriggerEvents:         algo.TriggerEvents(reason, deal.ChampionIdentified),
		ReentryApproach:       algo.ReentryApproach(deal, reason),
		RiskFactors:           risks,
		EstimatedValue:        algo.EstimatedValue(deal.OriginalValue, probability),
		ConfidenceLevel:       algo.ReversalConfidence(deal),
		AnalyzedAt:            now,
	}, nil
}
