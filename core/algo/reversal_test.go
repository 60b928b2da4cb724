package algo

import (
	"testing"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
)

func TestReversalProbability(t *testing.T) {
	tests := []struct {
		name     string
		deal     schema.LostDeal
		expected float64
	}{
		{
			name:     "base",
			deal:     schema.LostDeal{LostAt: testNow.AddDate(0, 0, -60)},
			expected: 0.3,
		},
		{
			name: "every bonus",
			deal: schema.LostDeal{
				LostAt:             testNow.AddDate(0, 0, -10),
				TrustLevel:         schema.HighTrust,
				ChampionIdentified: true,
				ExecutiveAccess:    true,
				LossReason:         "budget was frozen",
			},
			expected: 0.9,
		},
		{
			name: "competitor and stale",
			deal: schema.LostDeal{
				LostAt:         testNow.AddDate(0, 0, -200),
				CompetitorName: "Globex",
			},
			expected: 0.05,
		},
		{
			name:     "non reversible reason",
			deal:     schema.LostDeal{LostAt: testNow.AddDate(0, 0, -60), LossReason: "price too high"},
			expected: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ReversalProbability(tt.deal, testNow), 1e-9)
		})
	}
}

func TestIsReversibleLoss(t *testing.T) {
	assert.True(t, IsReversibleLoss("Bad timing for us"))
	assert.True(t, IsReversibleLoss("internal politics"))
	assert.False(t, IsReversibleLoss("went elsewhere on price"))
	assert.False(t, IsReversibleLoss(""))
}

func TestReversalConfidence(t *testing.T) {
	assert.InDelta(t, 0.4, ReversalConfidence(schema.LostDeal{}), 1e-9)
	assert.InDelta(t, 0.7, ReversalConfidence(schema.LostDeal{
		LossReason: "timing",
		TrustLevel: schema.MediumTrust,
	}), 1e-9)

	full := schema.LostDeal{
		LossReason:         "timing",
		Objections:         []string{"busy"},
		TrustLevel:         schema.HighTrust,
		ChampionIdentified: true,
		Signals:            schema.BehaviorSignals{EngagementEvents: eventsWithDepths(0.5, 0.5, 0.5)},
	}
	assert.Equal(t, 1.0, ReversalConfidence(full))
}

func TestEstimatedValue(t *testing.T) {
	assert.InDelta(t, 40000.0, EstimatedValue(100000, 0.5), 1e-9)
	assert.Equal(t, 0.0, EstimatedValue(0, 0.9))
}

func TestDealReasons(t *testing.T) {
	deal := schema.LostDeal{LossReason: "budget cut", Objections: []string{"too expensive"}}
	got := DealReasons(deal)
	assert.Equal(t, schema.BudgetConstraints, got.Primary)
	assert.Equal(t, []schema.Reason{schema.PriceShock}, got.Secondary)

	inferred := DealReasons(schema.LostDeal{LossReason: "no idea", Objections: []string{"feature missing"}})
	assert.Equal(t, schema.FeatureGap, inferred.Primary)

	assert.Equal(t, schema.UnknownReason, DealReasons(schema.LostDeal{}).Primary)
}
