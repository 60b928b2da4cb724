package algo

import (
	"slices"
	"strings"

	"github.com/huangsam/dealsense/schema"
)

// Evidence weights for the reason inferencer.
const (
	priceShockWeight  = 0.9
	objectionWeight   = 0.3
	suddenDropWeight  = 0.4
	gradualFadeWeight = 0.3
	maxSecondary      = 2
)

// ReasonInference is the ranked outcome of reason inference.
type ReasonInference struct {
	Primary   schema.Reason
	Secondary []schema.Reason
	Scores    []schema.ReasonScore // ranked, positive scores only
}

// MatchReason returns the reason of the first keyword group matching text, if any.
func MatchReason(text string) (schema.Reason, bool) {
	lower := strings.ToLower(text)
	for _, group := range schema.ReasonKeywords {
		for _, kw := range group.Keywords {
			if strings.Contains(lower, kw) {
				return group.Reason, true
			}
		}
	}
	return "", false
}

// InferReasons accumulates evidence from price reactions, objections and the
// engagement trend, then ranks reasons by score with declaration-order ties.
func InferReasons(signals schema.BehaviorSignals, decline schema.DeclineAnalysis) ReasonInference {
	scores := make(map[schema.Reason]float64, len(schema.AllReasons))

	for _, pr := range signals.PriceReactions {
		if pr.Reaction == schema.ShockReaction || pr.Reaction == schema.NegativeReaction {
			scores[schema.PriceShock] += priceShockWeight
			break
		}
	}

	for _, objection := range signals.ObjectionHistory {
		if reason, ok := MatchReason(objection); ok {
			scores[reason] = min(1.0, scores[reason]+objectionWeight)
		}
	}

	if decline.SuddenDrop {
		scores[schema.CompetitorDistraction] += suddenDropWeight
	}
	if decline.GradualFade {
		scores[schema.UrgencyLacking] += gradualFadeWeight
	}

	return rankReasons(scores)
}

// rankReasons orders positive scores descending, breaking ties by declaration order.
func rankReasons(scores map[schema.Reason]float64) ReasonInference {
	ranked := make([]schema.ReasonScore, 0, len(scores))
	for _, r := range schema.AllReasons {
		if s := clamp01(scores[r]); s > 0 {
			ranked = append(ranked, schema.ReasonScore{Reason: r, Score: s})
		}
	}
	slices.SortStableFunc(ranked, func(a, b schema.ReasonScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return schema.ReasonOrder(a.Reason) - schema.ReasonOrder(b.Reason)
		}
	})

	out := ReasonInference{Primary: schema.UnknownReason, Secondary: []schema.Reason{}, Scores: ranked}
	if len(ranked) == 0 {
		return out
	}
	out.Primary = ranked[0].Reason
	for _, rs := range ranked[1:] {
		if len(out.Secondary) == maxSecondary {
			break
		}
		out.Secondary = append(out.Secondary, rs.Reason)
	}
	return out
}

// HasReason reports whether r is the primary or one of the secondary reasons.
func (ri ReasonInference) HasReason(r schema.Reason) bool {
	return ri.Primary == r || slices.Contains(ri.Secondary, r)
}
