package schema

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfigIsValid(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Recoverability, len(AllReasons))
	assert.Equal(t, 0.4, cfg.UnknownTrust)
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *EngineConfig)
		message string
	}{
		{
			name:    "thresholds not increasing",
			mutate:  func(c *EngineConfig) { c.Stages.Dormant = c.Stages.Cooling },
			message: "strictly increasing",
		},
		{
			name:    "depth weights off by more than tolerance",
			mutate:  func(c *EngineConfig) { c.DepthWeights.Stage = 0.6 },
			message: "depth weights must sum to 1.0",
		},
		{
			name:    "potential weights off",
			mutate:  func(c *EngineConfig) { c.PotentialWeights.Engagement = 0 },
			message: "potential weights must sum to 1.0",
		},
		{
			name:    "negative delay",
			mutate:  func(c *EngineConfig) { c.ReasonDelayDays[TimingMismatch] = -1 },
			message: "reason delay for timing_mismatch",
		},
		{
			name:    "routing out of order",
			mutate:  func(c *EngineConfig) { c.Routing.Nurture = 80 },
			message: "routing thresholds",
		},
		{
			name:    "routing threshold is NaN",
			mutate:  func(c *EngineConfig) { c.Routing.Sales = math.NaN() },
			message: "routing thresholds must be finite",
		},
		{
			name:    "routing threshold is infinite",
			mutate:  func(c *EngineConfig) { c.Routing.Nurture = math.Inf(-1) },
			message: "routing thresholds must be finite",
		},
		{
			name:    "recoverability out of range",
			mutate:  func(c *EngineConfig) { c.Recoverability[PriceShock] = 1.5 },
			message: "recoverability for price_shock",
		},
		{
			name:    "unknown reason in reversal delays",
			mutate:  func(c *EngineConfig) { c.ReversalDelay["weather"] = 3 },
			message: "unknown reason \"weather\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestEngineConfigValidateListsProblemsInStableOrder(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.ReasonDelayDays["weather"] = 3
	cfg.ReasonDelayDays["apathy"] = 3
	cfg.SourceTrust["zeta"] = 2
	cfg.SourceTrust["alpha"] = -1

	first := cfg.Validate()
	require.Error(t, first)
	for range 20 {
		assert.Equal(t, first.Error(), cfg.Validate().Error())
	}
	msg := first.Error()
	assert.Less(t, strings.Index(msg, `"apathy"`), strings.Index(msg, `"weather"`))
	assert.Less(t, strings.Index(msg, `"alpha"`), strings.Index(msg, `"zeta"`))
}

func TestEngineConfigValidateWithinTolerance(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.DepthWeights = DepthWeights{Stage: 0.5, Engagement: 0.3, Response: 0.2005}
	assert.NoError(t, cfg.Validate())
}

func TestEngineConfigClone(t *testing.T) {
	cfg := DefaultEngineConfig()
	clone := cfg.Clone()
	clone.Recoverability[PriceShock] = 0.1
	clone.SourceTrust["referral"] = 0.2

	assert.Equal(t, 0.70, cfg.Recoverability[PriceShock])
	assert.Equal(t, 0.9, cfg.SourceTrust["referral"])
}
