package algo

import (
	"testing"

	"github.com/huangsam/dealsense/schema"
)

// FuzzReactivationPotential checks that potential stays within [0,1] for any signals.
func FuzzReactivationPotential(f *testing.F) {
	f.Add(0, 0, 0.5, 0.5, 0.5, 1.0)
	f.Add(4, 14, 2.0, -1.0, 9.0, 0.0)
	f.Add(-3, 99, 0.0, 0.0, 0.0, 1000.0)

	cfg := schema.DefaultEngineConfig()
	f.Fuzz(func(t *testing.T, stageIdx, reasonIdx int, depth, sentiment, quality, speed float64) {
		stage := schema.AllStages[wrap(stageIdx, len(schema.AllStages))]
		reason := schema.AllReasons[wrap(reasonIdx, len(schema.AllReasons))]
		if speed < 0 {
			speed = -speed
		}
		ef := EngagementFactor([]schema.EngagementEvent{{Depth: depth, Sentiment: sentiment}})
		rf := ResponseFactor([]schema.ResponsePattern{{EngagementQuality: quality, ResponseSpeed: speed}})

		p := ReactivationPotential(stage, reason, ef, cfg)
		if p < 0 || p > 1 {
			t.Fatalf("potential out of range: %v", p)
		}
		d := DormancyDepth(stage, ef, rf, cfg)
		if d < 0 || d > 1 {
			t.Fatalf("depth out of range: %v", d)
		}
	})
}

// FuzzReversalProbability checks that probability and confidence stay within [0,1].
func FuzzReversalProbability(f *testing.F) {
	f.Add("high", true, true, "budget", "", 10)
	f.Add("broken", false, false, "", "Globex", 400)
	f.Add("", true, false, "price", "x", -30)

	f.Fuzz(func(t *testing.T, trust string, champion, exec bool, lossReason, competitor string, daysAgo int) {
		deal := schema.LostDeal{
			ID:                 "deal",
			LostAt:             testNow.AddDate(0, 0, -(daysAgo % 5000)),
			TrustLevel:         schema.TrustLevel(trust),
			ChampionIdentified: champion,
			ExecutiveAccess:    exec,
			LossReason:         lossReason,
			CompetitorName:     competitor,
		}
		if p := ReversalProbability(deal, testNow); p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", p)
		}
		if c := ReversalConfidence(deal); c < 0 || c > 1 {
			t.Fatalf("confidence out of range: %v", c)
		}
	})
}

func wrap(n, size int) int {
	return ((n % size) + size) % size
}
