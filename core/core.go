// Package core runs the decision pipelines and connects them to storage, publishing and output.
package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/inputs"
	"github.com/huangsam/dealsense/internal/outwriter"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// ExecutorFunc defines the function signature for executing the different pipelines.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// NewEngineFromConfig builds an engine from the validated CLI configuration.
func NewEngineFromConfig(cfg *contract.Config) (*Engine, error) {
	return NewEngine(cfg.Engine, WithFixedTime(cfg.Now))
}

// GetDormancyResults classifies leads, sinks the decisions and returns the ranked classifications.
// A partially failed batch returns the successful results together with an error.
// The results are nil only when the engine could not be built.
func GetDormancyResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, leads []schema.DormantLead) ([]schema.Classification, error) {
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx = beginRun(ctx, cfg, mgr, schema.DormancyPipeline)
	items := engine.ClassifyDormantLeads(ctx, leads, cfg.Workers)
	failures := logFailures(schema.DormancyPipeline, items)
	results := Results(items)
	sinkDecisions(ctx, mgr, dormancyRecords(results))
	endRun(ctx, mgr, len(items), len(failures))

	return rankClassifications(results), batchError(schema.DormancyPipeline, len(items), failures)
}

// GetScoreResults scores and routes leads, sinks the decisions and returns the ranked results.
func GetScoreResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, leads []schema.InboundLead) ([]schema.ScoreResult, error) {
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx = beginRun(ctx, cfg, mgr, schema.ScoringPipeline)
	items := engine.ScoreAndRouteLeads(ctx, leads, cfg.Workers)
	failures := logFailures(schema.ScoringPipeline, items)
	results := Results(items)
	sinkDecisions(ctx, mgr, scoringRecords(results))
	endRun(ctx, mgr, len(items), len(failures))

	return rankScoreResults(results), batchError(schema.ScoringPipeline, len(items), failures)
}

// GetReversalResults analyzes lost deals, sinks the decisions and returns the ranked opportunities.
func GetReversalResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, deals []schema.LostDeal) ([]schema.ReversalOpportunity, error) {
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx = beginRun(ctx, cfg, mgr, schema.ReversalPipeline)
	items := engine.AnalyzeLostDeals(ctx, deals, cfg.Workers)
	failures := logFailures(schema.ReversalPipeline, items)
	results := Results(items)
	sinkDecisions(ctx, mgr, reversalRecords(results))
	endRun(ctx, mgr, len(items), len(failures))

	return rankReversals(results), batchError(schema.ReversalPipeline, len(items), failures)
}

// ExecuteDormancy classifies the dormant leads in cfg.InputPath and prints the results.
// It serves as the main entry point for the 'dormancy' command.
func ExecuteDormancy(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	leads, err := inputs.LoadDormantLeads(cfg.InputPath)
	if err != nil {
		return err
	}
	results, batchErr := GetDormancyResults(ctx, cfg, mgr, leads)
	if results == nil {
		return batchErr
	}
	if err := outwriter.PrintDormancyResults(results, cfg, time.Since(start)); err != nil {
		return err
	}
	return batchErr
}

// ExecuteScoring scores and routes the inbound leads in cfg.InputPath and prints the results.
// It serves as the main entry point for the 'score' command.
func ExecuteScoring(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	leads, err := inputs.LoadInboundLeads(cfg.InputPath)
	if err != nil {
		return err
	}
	results, batchErr := GetScoreResults(ctx, cfg, mgr, leads)
	if results == nil {
		return batchErr
	}
	if err := outwriter.PrintScoreResults(results, cfg, time.Since(start)); err != nil {
		return err
	}
	return batchErr
}

// ExecuteReversal analyzes the lost deals in cfg.InputPath and prints the results.
// It serves as the main entry point for the 'reversal' command.
func ExecuteReversal(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	deals, err := inputs.LoadLostDeals(cfg.InputPath)
	if err != nil {
		return err
	}
	results, batchErr := GetReversalResults(ctx, cfg, mgr, deals)
	if results == nil {
		return batchErr
	}
	if err := outwriter.PrintReversalResults(results, cfg, time.Since(start)); err != nil {
		return err
	}
	return batchErr
}

// ExecuteMetrics displays the active thresholds, weights and tables of all pipelines.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.PrintMetricsDefinitions(cfg)
}

// RecordOutcome appends a reversal outcome to the analysis store and publishes it.
// A missing ID or timestamp is filled in before validation.
func RecordOutcome(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, outcome schema.ReversalOutcome) (schema.ReversalOutcome, error) {
	if outcome.ID == "" {
		outcome.ID = uuid.NewString()
	}
	if outcome.RecordedAt.IsZero() {
		outcome.RecordedAt = cfg.Now
		if outcome.RecordedAt.IsZero() {
			outcome.RecordedAt = time.Now().UTC()
		}
	}
	if err := outcome.Validate(); err != nil {
		return schema.ReversalOutcome{}, err
	}

	store := analysisStoreOf(mgr)
	if store == nil {
		return schema.ReversalOutcome{}, eris.New("recording outcomes requires an analysis backend")
	}
	if err := store.RecordOutcome(outcome); err != nil {
		return schema.ReversalOutcome{}, eris.Wrapf(err, "failed to record outcome for deal %s", outcome.DealID)
	}

	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return schema.ReversalOutcome{}, err
	}
	engine.LearnFromOutcome(outcome)

	if pub := mgr.GetPublisher(); pub != nil {
		if err := pub.PublishOutcome(ctx, outcome); err != nil {
			contract.LogWarn("Failed to publish outcome", err)
		}
	}
	return outcome, nil
}

// ExecuteOutcome records the outcome and prints it.
// It serves as the main entry point for the 'outcome record' command.
func ExecuteOutcome(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, outcome schema.ReversalOutcome) error {
	recorded, err := RecordOutcome(ctx, cfg, mgr, outcome)
	if err != nil {
		return err
	}
	return outwriter.PrintOutcome(recorded, cfg)
}
