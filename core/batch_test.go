package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDormantLeadsKeepsInputOrder(t *testing.T) {
	engine := newTestEngine(t)

	var leads []schema.DormantLead
	for i := range 50 {
		leads = append(leads, leadSilentFor(fmt.Sprintf("lead-%02d", i), i*5))
	}
	leads[7] = schema.DormantLead{ID: "broken"} // missing last_engagement

	items := engine.ClassifyDormantLeads(context.Background(), leads, 8)
	require.Len(t, items, len(leads))
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, leads[i].ID, item.EntityID)
		if i == 7 {
			assert.False(t, item.OK())
			assert.True(t, errors.Is(item.Err, schema.ErrInvalidInput))
			assert.NotEmpty(t, item.Error)
			assert.Nil(t, item.Result)
			continue
		}
		require.True(t, item.OK(), "item %d", i)
		assert.Equal(t, leads[i].ID, item.Result.EntityID)
	}

	assert.Len(t, Results(items), len(leads)-1)
	failures := Failures(items)
	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].EntityID)
}

func TestBatchMatchesSingleCalls(t *testing.T) {
	engine := newTestEngine(t)
	deals := []schema.LostDeal{
		{ID: "d1", OriginalValue: 1000, LostAt: testNow.AddDate(0, 0, -5), LossReason: "timing"},
		{ID: "d2", OriginalValue: 5000, LostAt: testNow.AddDate(0, -8, 0), CompetitorName: "Globex"},
	}

	items := engine.AnalyzeLostDeals(context.Background(), deals, 4)
	for i, deal := range deals {
		single, err := engine.AnalyzeLostDeal(deal)
		require.NoError(t, err)
		require.True(t, items[i].OK())
		assert.Equal(t, single, *items[i].Result)
	}
}

func TestScoreAndRouteLeadsEmptyAndWorkerBounds(t *testing.T) {
	engine := newTestEngine(t)

	assert.Empty(t, engine.ScoreAndRouteLeads(context.Background(), nil, 4))

	items := engine.ScoreAndRouteLeads(context.Background(), []schema.InboundLead{{ID: "a"}, {ID: "b"}}, 0)
	require.Len(t, items, 2)
	assert.True(t, items[0].OK())
	assert.True(t, items[1].OK())
}

func TestBatchStopsOnCanceledContext(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := engine.ClassifyDormantLeads(ctx, []schema.DormantLead{leadSilentFor("a", 3), leadSilentFor("b", 4)}, 2)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, item.OK())
		assert.True(t, errors.Is(item.Err, context.Canceled))
	}
}

func TestRankHelpers(t *testing.T) {
	classifications := rankClassifications([]schema.Classification{
		{EntityID: "low", ReactivationPotential: 0.2},
		{EntityID: "high", ReactivationPotential: 0.9},
		{EntityID: "tie", ReactivationPotential: 0.2},
	})
	assert.Equal(t, []string{"high", "low", "tie"}, []string{
		classifications[0].EntityID, classifications[1].EntityID, classifications[2].EntityID,
	})

	scores := rankScoreResults([]schema.ScoreResult{{EntityID: "a", EARScore: 10}, {EntityID: "b", EARScore: 300}})
	assert.Equal(t, "b", scores[0].EntityID)

	reversals := rankReversals([]schema.ReversalOpportunity{
		{DealID: "a", EstimatedValue: 100, ReversalProbability: 0.2},
		{DealID: "b", EstimatedValue: 100, ReversalProbability: 0.6},
		{DealID: "c", EstimatedValue: 900},
	})
	assert.Equal(t, "c", reversals[0].DealID)
	assert.Equal(t, "b", reversals[1].DealID)
}
