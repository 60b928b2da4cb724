package core

import (
	"context"
	"time"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// beginRun opens a decision run in the analysis store, if one is configured,
// and stores its ID in the returned context.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, pipeline schema.Pipeline) context.Context {
	store := analysisStoreOf(mgr)
	if store == nil {
		return ctx
	}
	runID, err := store.BeginRun(pipeline, time.Now(), cfg.EngineParams())
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	if runID > 0 {
		ctx = withRunID(ctx, runID)
	}
	return ctx
}

// endRun finalizes the decision run started by beginRun.
func endRun(ctx context.Context, mgr contract.StoreManager, total, failed int) {
	store := analysisStoreOf(mgr)
	runID, ok := getRunID(ctx)
	if store == nil || !ok {
		return
	}
	if err := store.EndRun(runID, time.Now(), total, failed); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// sinkDecisions fans decision records out to the analysis store and the publisher.
// Sink failures are logged and never fail the run.
func sinkDecisions(ctx context.Context, mgr contract.StoreManager, records []schema.DecisionRecord) {
	if len(records) == 0 || mgr == nil {
		return
	}
	runID, tracked := getRunID(ctx)
	for i := range records {
		records[i].RunID = runID
	}

	var g errgroup.Group
	if store := mgr.GetAnalysisStore(); store != nil && tracked {
		g.Go(func() error {
			for _, r := range records {
				if err := store.RecordDecision(runID, r); err != nil {
					return eris.Wrapf(err, "failed to record decision for %s", r.EntityID)
				}
			}
			return nil
		})
	}
	if pub := mgr.GetPublisher(); pub != nil {
		g.Go(func() error {
			return pub.PublishDecisions(ctx, records)
		})
	}
	if err := g.Wait(); err != nil {
		contract.LogWarn("Decision sink failed", err)
	}
}

// logFailures logs every failed item of a batch and returns the failures.
func logFailures[T any](pipeline schema.Pipeline, items []BatchItem[T]) []BatchItem[T] {
	failures := Failures(items)
	for _, item := range failures {
		zap.L().Warn("entity failed",
			zap.String("pipeline", string(pipeline)),
			zap.Int("index", item.Index),
			zap.String("entity_id", item.EntityID),
			zap.Error(item.Err))
	}
	return failures
}

// batchError summarizes a partially failed batch after its output has been written.
// It wraps the first failure so callers can still match sentinel errors.
func batchError[T any](pipeline schema.Pipeline, total int, failures []BatchItem[T]) error {
	if len(failures) == 0 {
		return nil
	}
	return eris.Wrapf(failures[0].Err, "%s: %d of %d entities failed", pipeline, len(failures), total)
}

func analysisStoreOf(mgr contract.StoreManager) contract.AnalysisStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetAnalysisStore()
}
