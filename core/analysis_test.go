package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/iocache"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Workers:   2,
		Precision: 2,
		Output:    schema.JSONOut,
		Now:       testNow,
		Engine:    schema.DefaultEngineConfig(),
	}
}

func TestRunTrackingLifecycle(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	pub := &iocache.MockPublisher{}
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetAnalysisStore").Return(store)
	mgr.On("GetPublisher").Return(pub)

	store.On("BeginRun", schema.DormancyPipeline, mock.Anything, mock.Anything).Return(int64(42), nil)
	store.On("RecordDecision", int64(42), mock.AnythingOfType("schema.DecisionRecord")).Return(nil).Twice()
	store.On("EndRun", int64(42), mock.Anything, 2, 0).Return(nil)
	pub.On("PublishDecisions", mock.Anything, mock.MatchedBy(func(records []schema.DecisionRecord) bool {
		return len(records) == 2 && records[0].RunID == 42
	})).Return(nil)

	engine := newTestEngine(t)
	ctx := beginRun(context.Background(), testConfig(), mgr, schema.DormancyPipeline)
	runID, ok := getRunID(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), runID)

	items := engine.ClassifyDormantLeads(ctx, []schema.DormantLead{leadSilentFor("a", 3), leadSilentFor("b", 40)}, 2)
	records := dormancyRecords(Results(items))
	sinkDecisions(ctx, mgr, records)
	endRun(ctx, mgr, len(items), len(logFailures(schema.DormancyPipeline, items)))

	store.AssertExpectations(t)
	pub.AssertExpectations(t)
	assert.Equal(t, string(schema.CoolingStage), records[0].Label)
	assert.Equal(t, string(schema.DeepDormantStage), records[1].Label)
	assert.Contains(t, records[1].PayloadJSON, `"entity_id":"b"`)
}

func TestSinkFailuresDoNotFailRun(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	pub := &iocache.MockPublisher{}
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetAnalysisStore").Return(store)
	mgr.On("GetPublisher").Return(pub)

	store.On("RecordDecision", int64(7), mock.Anything).Return(errors.New("disk full"))
	pub.On("PublishDecisions", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	ctx := withRunID(context.Background(), 7)
	assert.NotPanics(t, func() {
		sinkDecisions(ctx, mgr, []schema.DecisionRecord{{EntityID: "a"}, {EntityID: "b"}})
	})
	store.AssertNumberOfCalls(t, "RecordDecision", 1)
}

func TestBeginRunWithoutStore(t *testing.T) {
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetAnalysisStore").Return(nil)

	ctx := beginRun(context.Background(), testConfig(), mgr, schema.ScoringPipeline)
	_, ok := getRunID(ctx)
	assert.False(t, ok)

	_, ok = getRunID(beginRun(context.Background(), testConfig(), nil, schema.ScoringPipeline))
	assert.False(t, ok)
}

func TestRecordsCarryHeadlineNumbers(t *testing.T) {
	scoring := scoringRecords([]schema.ScoreResult{{
		EntityID: "in-1", RoutingDecision: schema.NurtureRouting, EARScore: 55, IntentScore: 60,
		EconomicPotential: "medium", ScoredAt: testNow,
	}})
	require.Len(t, scoring, 1)
	assert.Equal(t, schema.ScoringPipeline, scoring[0].Pipeline)
	assert.Equal(t, "nurture", scoring[0].Label)
	assert.InDelta(t, 55.0, scoring[0].Score, 1e-9)
	assert.InDelta(t, 60.0, scoring[0].Secondary, 1e-9)

	reversal := reversalRecords([]schema.ReversalOpportunity{{
		DealID: "d-1", PrimaryStrategy: "timing_reconnect", LossReason: schema.TimingMismatch,
		ReversalProbability: 0.7, ConfidenceLevel: 0.55, AnalyzedAt: testNow,
	}})
	require.Len(t, reversal, 1)
	assert.Equal(t, "timing_reconnect", reversal[0].Label)
	assert.Equal(t, string(schema.TimingMismatch), reversal[0].Reason)
	assert.Equal(t, testNow, reversal[0].DecidedAt)
}

func TestBatchError(t *testing.T) {
	assert.NoError(t, batchError[schema.ReversalOpportunity](schema.ReversalPipeline, 3, nil))
	failures := []BatchItem[schema.ReversalOpportunity]{
		{Index: 1, EntityID: "d-2", Err: eris.Wrap(schema.ErrInvalidInput, "deal d-2")},
	}
	err := batchError(schema.ReversalPipeline, 3, failures)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.ErrorIs(t, err, schema.ErrInvalidInput)
}

func TestRecordOutcome(t *testing.T) {
	t.Run("fills id and timestamp then stores and publishes", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		pub := &iocache.MockPublisher{}
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetAnalysisStore").Return(store)
		mgr.On("GetPublisher").Return(pub)
		store.On("RecordOutcome", mock.AnythingOfType("schema.ReversalOutcome")).Return(nil)
		pub.On("PublishOutcome", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		got, err := RecordOutcome(context.Background(), testConfig(), mgr, schema.ReversalOutcome{
			DealID: "deal-1", Outcome: schema.WonOutcome, Revenue: 12000,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, testNow, got.RecordedAt)
		store.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("invalid outcome is rejected before storage", func(t *testing.T) {
		mgr := &iocache.MockStoreManager{}
		_, err := RecordOutcome(context.Background(), testConfig(), mgr, schema.ReversalOutcome{
			DealID: "deal-1", Outcome: "maybe",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrInvalidInput))
		mgr.AssertNotCalled(t, "GetAnalysisStore")
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetAnalysisStore").Return(store)
		store.On("RecordOutcome", mock.Anything).Return(errors.New("locked"))

		_, err := RecordOutcome(context.Background(), testConfig(), mgr, schema.ReversalOutcome{
			DealID: "deal-1", Outcome: schema.NoResponseOutcome,
		})
		assert.Error(t, err)
	})

	t.Run("requires an analysis backend", func(t *testing.T) {
		mgr := &iocache.MockStoreManager{}
		mgr.On("GetAnalysisStore").Return(nil)

		_, err := RecordOutcome(context.Background(), testConfig(), mgr, schema.ReversalOutcome{
			DealID: "deal-1", Outcome: schema.ReopenedOutcome,
		})
		assert.Error(t, err)
	})
}
