package algo

import (
	"slices"
	"strings"
	"time"

	"github.com/huangsam/dealsense/schema"
)

// Reversal probability adjustments.
const (
	reversalBase        = 0.3
	highTrustBonus      = 0.15
	championBonus       = 0.10
	execAccessBonus     = 0.10
	reversibleBonus     = 0.15
	competitorPenalty   = 0.10
	recentLossBonus     = 0.10
	staleLossPenalty    = 0.15
	recentLossDays      = 30
	staleLossDays       = 180
	concessionHaircut   = 0.8
	confidenceBase      = 0.4
	confidencePerSignal = 0.15
	minConfidentEvents  = 3
)

// DealReasons infers the loss reason of a deal. A stated loss reason that matches
// the keyword table wins; otherwise the evidence from objections and contact history decides.
func DealReasons(deal schema.LostDeal) ReasonInference {
	signals := deal.Signals
	signals.ObjectionHistory = slices.Concat(deal.Signals.ObjectionHistory, deal.Objections)
	inferred := InferReasons(signals, AnalyzeDecline(signals.EngagementEvents))

	stated, ok := MatchReason(deal.LossReason)
	if !ok || stated == inferred.Primary {
		return inferred
	}

	out := ReasonInference{Primary: stated, Secondary: []schema.Reason{}, Scores: inferred.Scores}
	for _, rs := range inferred.Scores {
		if len(out.Secondary) == maxSecondary {
			break
		}
		if rs.Reason != stated {
			out.Secondary = append(out.Secondary, rs.Reason)
		}
	}
	return out
}

// IsReversibleLoss reports whether the stated loss reason tends to resolve on its own.
func IsReversibleLoss(lossReason string) bool {
	r, ok := MatchReason(lossReason)
	if !ok {
		return false
	}
	_, reversible := schema.ReversibleReasons[r]
	return reversible
}

// ReversalProbability estimates the likelihood that a lost deal can be re-opened and won.
func ReversalProbability(deal schema.LostDeal, now time.Time) float64 {
	p := reversalBase
	if deal.TrustLevel == schema.HighTrust {
		p += highTrustBonus
	}
	if deal.ChampionIdentified {
		p += championBonus
	}
	if deal.ExecutiveAccess {
		p += execAccessBonus
	}
	if IsReversibleLoss(deal.LossReason) {
		p += reversibleBonus
	}
	if strings.TrimSpace(deal.CompetitorName) != "" {
		p -= competitorPenalty
	}

	// Loss age uses whole days, like stage classification.
	switch days := DaysSince(deal.LostAt, now); {
	case days < recentLossDays:
		p += recentLossBonus
	case days > staleLossDays:
		p -= staleLossPenalty
	}
	return clamp01(p)
}

// ReversalConfidence grows with the amount of evidence behind the analysis.
func ReversalConfidence(deal schema.LostDeal) float64 {
	c := confidenceBase
	if strings.TrimSpace(deal.LossReason) != "" {
		c += confidencePerSignal
	}
	if len(deal.Objections) > 0 || len(deal.Signals.ObjectionHistory) > 0 {
		c += confidencePerSignal
	}
	if deal.TrustLevel != "" {
		c += confidencePerSignal
	}
	if len(deal.Signals.EngagementEvents) >= minConfidentEvents {
		c += confidencePerSignal
	}
	if strings.TrimSpace(deal.CompetitorName) != "" || deal.ChampionIdentified {
		c += confidencePerSignal
	}
	return clamp01(c)
}

// EstimatedValue applies the expected concession haircut to the probability-weighted value.
func EstimatedValue(originalValue, probability float64) float64 {
	return originalValue * probability * concessionHaircut
}
