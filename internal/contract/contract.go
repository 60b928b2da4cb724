// Package contract provides interfaces and shared utilities for the dealsense CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/dealsense/schema"
)

// StoreManager defines the interface for reaching the decision sinks.
// This allows the sink layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
	GetPublisher() Publisher
}

// AnalysisStore defines the interface for tracking decision runs and the outcome log.
type AnalysisStore interface {
	// BeginRun creates a new decision run and returns its unique ID
	BeginRun(pipeline schema.Pipeline, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the decision run with completion data
	EndRun(runID int64, endTime time.Time, totalEntities, totalFailed int) error

	// RecordDecision stores one decision produced by a run
	RecordDecision(runID int64, record schema.DecisionRecord) error

	// RecordOutcome appends a reversal outcome to the feedback log
	RecordOutcome(outcome schema.ReversalOutcome) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllRuns retrieves all decision runs
	GetAllRuns() ([]schema.DecisionRunRecord, error)

	// GetAllDecisions retrieves all decision records
	GetAllDecisions() ([]schema.DecisionRecord, error)

	// GetAllOutcomes retrieves the full outcome log
	GetAllOutcomes() ([]schema.ReversalOutcomeRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Publisher defines the interface for streaming decisions to downstream consumers.
type Publisher interface {
	// PublishDecisions sends decision records, keyed by entity ID
	PublishDecisions(ctx context.Context, records []schema.DecisionRecord) error

	// PublishOutcome sends one reversal outcome, keyed by deal ID
	PublishOutcome(ctx context.Context, outcome schema.ReversalOutcome) error

	// Close flushes and releases the underlying writer
	Close() error
}
