package algo

import (
	"testing"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
)

func TestEngagementFactor(t *testing.T) {
	assert.Equal(t, 0.0, EngagementFactor(nil))
	assert.InDelta(t, 0.7, EngagementFactor([]schema.EngagementEvent{{Depth: 0.8, Sentiment: 0.6}}), 1e-9)
	assert.InDelta(t, 0.5, EngagementFactor([]schema.EngagementEvent{{Depth: 2, Sentiment: 0}}), 1e-9, "depth is clamped")
}

func TestResponseFactor(t *testing.T) {
	assert.Equal(t, 0.0, ResponseFactor(nil))
	assert.InDelta(t, 0.5, ResponseFactor([]schema.ResponsePattern{{EngagementQuality: 0.5, ResponseSpeed: 1}}), 1e-9)
	assert.InDelta(t, 0.9, ResponseFactor([]schema.ResponsePattern{{EngagementQuality: 0.8, ResponseSpeed: 0}}), 1e-9)
}

func TestDormancyDepth(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	tests := []struct {
		name       string
		stage      schema.Stage
		engagement float64
		response   float64
		expected   float64
	}{
		{"no data dormant", schema.DormantStage, 0, 0, 0.7},
		{"no data fossilized", schema.FossilizedStage, 0, 0, 1.0},
		{"no data cooling", schema.CoolingStage, 0, 0, 0.6},
		{"fully engaged cooling", schema.CoolingStage, 1, 1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DormancyDepth(tt.stage, tt.engagement, tt.response, cfg), 1e-9)
		})
	}
}

func TestReactivationPotential(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	assert.InDelta(t, 0.48, ReactivationPotential(schema.DormantStage, schema.UnknownReason, 0, cfg), 1e-9)
	assert.InDelta(t, 0.72, ReactivationPotential(schema.CoolingStage, schema.TimingMismatch, 0.5, cfg), 1e-9)
	assert.InDelta(t, 0.16, ReactivationPotential(schema.FossilizedStage, schema.GhostingHabit, 0, cfg), 1e-9)
}
