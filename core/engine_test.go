package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(schema.DefaultEngineConfig(), WithFixedTime(testNow))
	require.NoError(t, err)
	return engine
}

func leadSilentFor(id string, days int) schema.DormantLead {
	return schema.DormantLead{
		ID:      id,
		Signals: schema.BehaviorSignals{LastEngagement: testNow.AddDate(0, 0, -days)},
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("valid default config", func(t *testing.T) {
		engine, err := NewEngine(schema.DefaultEngineConfig())
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultEngineConfig(), engine.Config())
	})

	t.Run("invalid config is a configuration error", func(t *testing.T) {
		cfg := schema.DefaultEngineConfig()
		cfg.Routing.Nurture = 90
		_, err := NewEngine(cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrConfiguration))
	})

	t.Run("engine owns its configuration", func(t *testing.T) {
		cfg := schema.DefaultEngineConfig()
		engine, err := NewEngine(cfg)
		require.NoError(t, err)
		cfg.SourceTrust["referral"] = 0.0
		engine.Config().SourceTrust["referral"] = 0.1
		assert.InDelta(t, 0.9, engine.Config().SourceTrust["referral"], 1e-9)
	})

	t.Run("clock options", func(t *testing.T) {
		engine, err := NewEngine(schema.DefaultEngineConfig(), WithClock(func() time.Time { return testNow }))
		require.NoError(t, err)
		assert.Equal(t, testNow, engine.now())

		engine, err = NewEngine(schema.DefaultEngineConfig(), WithFixedTime(time.Time{}), WithClock(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine.now)
	})
}

func TestClassifyDormantLeadScenarios(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("ten days silent is dormant", func(t *testing.T) {
		c, err := engine.ClassifyDormantLead(leadSilentFor("lead-10", 10))
		require.NoError(t, err)
		assert.Equal(t, schema.DormantStage, c.Stage)
		assert.Equal(t, 10, c.DaysSinceEngagement)
		assert.Equal(t, testNow, c.ClassifiedAt)
	})

	t.Run("two hundred days silent is fossilized", func(t *testing.T) {
		c, err := engine.ClassifyDormantLead(leadSilentFor("lead-200", 200))
		require.NoError(t, err)
		assert.Equal(t, schema.FossilizedStage, c.Stage)
		require.NotEmpty(t, c.Risks)
		assert.Equal(t, "extreme_dormancy", c.Risks[0].Type)
		assert.Equal(t, schema.CriticalSeverity, c.Risks[0].Severity)
	})

	t.Run("empty signals degrade to unknown with no-data depth", func(t *testing.T) {
		c, err := engine.ClassifyDormantLead(leadSilentFor("lead-empty", 10))
		require.NoError(t, err)
		assert.Equal(t, schema.UnknownReason, c.PrimaryReason)
		assert.Empty(t, c.SecondaryReasons)
		cfg := schema.DefaultEngineConfig()
		// no events or patterns leave both factors at zero, so their weights count in full
		want := cfg.DepthWeights.Stage*cfg.StageWeights[schema.DormantStage] + cfg.DepthWeights.Engagement + cfg.DepthWeights.Response
		assert.InDelta(t, want, c.Depth, 1e-9)
		assert.GreaterOrEqual(t, c.ReactivationPotential, 0.0)
		assert.LessOrEqual(t, c.ReactivationPotential, 1.0)
		assert.True(t, c.OptimalWindow.Start.After(testNow))
		assert.NotEmpty(t, c.Approach.Strategy)
	})

	t.Run("objections point at price", func(t *testing.T) {
		lead := leadSilentFor("lead-price", 20)
		lead.Signals.ObjectionHistory = []string{"too expensive for us", "pricing is out of budget"}
		lead.Signals.PriceReactions = []schema.PriceReaction{{PricePoint: 5000, Reaction: schema.ShockReaction}}
		c, err := engine.ClassifyDormantLead(lead)
		require.NoError(t, err)
		assert.Equal(t, schema.PriceShock, c.PrimaryReason)
		assert.NotEmpty(t, c.ReasonScores)
	})
}

func TestClassifyDormantLeadInvalidInput(t *testing.T) {
	engine := newTestEngine(t)

	c, err := engine.ClassifyDormantLead(schema.DormantLead{ID: "no-history"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInvalidInput))
	assert.Equal(t, schema.Classification{}, c)
}

func TestScoreAndRouteLead(t *testing.T) {
	engine := newTestEngine(t)
	lead := schema.InboundLead{
		ID:     "in-1",
		Source: "Referral",
		Identity: schema.LeadIdentity{
			Email:       "ana@acme.io",
			Phone:       "+1-555-0100",
			CompanyName: "Acme",
		},
		Website: schema.LeadWebsite{PricingVisible: true, CompanySize: 40},
		Behavior: schema.LeadBehavior{
			HighIntentActivities: []string{schema.PricingPageView, schema.DemoRequest, schema.TrialSignup},
		},
	}

	r, err := engine.ScoreAndRouteLead(lead)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, r.IntentScore, 1e-9)
	assert.InDelta(t, 70.0, r.CapacityScore, 1e-9)
	assert.InDelta(t, 40.0, r.EfficiencyScore, 1e-9)
	assert.InDelta(t, 140.0, r.EARScore, 1e-9)
	assert.Equal(t, schema.SalesRouting, r.RoutingDecision)
	assert.InDelta(t, 0.9, r.SourceTrustWeight, 1e-9)
	assert.Equal(t, 40, r.WebsiteSignals.CompanySize)
	assert.True(t, r.IdentitySignals.CorporateDomain)
	assert.Equal(t, testNow, r.ScoredAt)

	_, err = engine.ScoreAndRouteLead(schema.InboundLead{ID: " "})
	assert.True(t, errors.Is(err, schema.ErrInvalidInput))
}

func TestAnalyzeLostDeal(t *testing.T) {
	engine := newTestEngine(t)
	deal := schema.LostDeal{
		ID:                 "deal-1",
		OriginalValue:      100000,
		LostAt:             testNow.AddDate(0, 0, -10),
		LossReason:         "budget cut for the year",
		TrustLevel:         schema.HighTrust,
		ChampionIdentified: true,
	}

	r, err := engine.AnalyzeLostDeal(deal)
	require.NoError(t, err)
	assert.Equal(t, schema.BudgetConstraints, r.LossReason)
	assert.Equal(t, "budget_cycle_reentry", r.PrimaryStrategy)
	assert.NotContains(t, r.AlternativeStrategies, r.PrimaryStrategy)
	assert.GreaterOrEqual(t, r.ReversalProbability, 0.0)
	assert.LessOrEqual(t, r.ReversalProbability, 1.0)
	assert.InDelta(t, deal.OriginalValue*r.ReversalProbability*0.8, r.EstimatedValue, 1e-6)
	assert.Contains(t, r.TriggerEvents, "Champion changes role or gets promoted")
	assert.True(t, r.OptimalTiming.Start.After(testNow))
	assert.Equal(t, "champion", r.ReentryApproach.Contact)
	require.Len(t, r.RiskFactors, 1)
	assert.Equal(t, "contact_moved_on", r.RiskFactors[0].Type)

	_, err = engine.AnalyzeLostDeal(schema.LostDeal{ID: "deal-2"})
	assert.True(t, errors.Is(err, schema.ErrInvalidInput))
}

func TestPipelinesAreIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	lead := leadSilentFor("lead-1", 45)
	lead.Signals.EngagementEvents = []schema.EngagementEvent{
		{Type: "email_open", Timestamp: testNow.AddDate(0, 0, -60), Depth: 0.8, Sentiment: 0.7},
		{Type: "meeting", Timestamp: testNow.AddDate(0, 0, -50), Depth: 0.2, Sentiment: 0.4},
	}
	lead.Signals.ObjectionHistory = []string{"not the right time"}

	first, err := engine.ClassifyDormantLead(lead)
	require.NoError(t, err)
	second, err := engine.ClassifyDormantLead(lead)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestLearnFromOutcomeLeavesEngineUnchanged(t *testing.T) {
	engine := newTestEngine(t)
	before := engine.Config()
	engine.LearnFromOutcome(schema.ReversalOutcome{DealID: "deal-1", Outcome: schema.WonOutcome})
	assert.Equal(t, before, engine.Config())
}
