package algo

import (
	"math"

	"github.com/huangsam/dealsense/schema"
)

// clamp01 bounds v to [0,1], mapping NaN to 0.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// clamp bounds v to [lo,hi], mapping NaN to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EngagementFactor is the mean of avg(depth, sentiment) across events, or 0 without events.
func EngagementFactor(events []schema.EngagementEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var sum float64
	for _, e := range events {
		sum += (clamp01(e.Depth) + clamp01(e.Sentiment)) / 2
	}
	return clamp01(sum / float64(len(events)))
}

// ResponseFactor is the mean of avg(quality, speed score) across patterns, or 0 without patterns.
// A reply within the hour scores close to 1 and decays as 1/(hours+1).
func ResponseFactor(patterns []schema.ResponsePattern) float64 {
	if len(patterns) == 0 {
		return 0
	}
	var sum float64
	for _, p := range patterns {
		speed := min(1.0, 1.0/(p.ResponseSpeed+1))
		sum += (clamp01(p.EngagementQuality) + speed) / 2
	}
	return clamp01(sum / float64(len(patterns)))
}

// DormancyDepth combines the stage weight with inverted engagement and response factors.
func DormancyDepth(stage schema.Stage, engagement, response float64, cfg schema.EngineConfig) float64 {
	w := cfg.DepthWeights
	raw := w.Stage*cfg.StageWeights[stage] +
		w.Engagement*(1-engagement) +
		w.Response*(1-response)
	return clamp01(raw)
}

// ReactivationPotential combines the stage potential, the primary reason's
// recoverability and a dampened engagement factor.
func ReactivationPotential(stage schema.Stage, primary schema.Reason, engagement float64, cfg schema.EngineConfig) float64 {
	w := cfg.PotentialWeights
	raw := w.Stage*cfg.StagePotentials[stage] +
		w.Recoverability*cfg.Recoverability[primary] +
		w.Engagement*(engagement*0.2)
	return clamp01(raw)
}
