package schema

import "time"

// DecisionRunRecord represents a row from the dealsense_decision_runs table.
type DecisionRunRecord struct {
	RunID         int64
	Pipeline      Pipeline
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalEntities int32
	TotalFailed   int32
	ConfigParams  *string
}

// DecisionRecord represents a row from the dealsense_decisions table.
// Score is the headline number of the pipeline: depth, EAR score or reversal probability.
type DecisionRecord struct {
	RunID       int64
	Pipeline    Pipeline
	EntityID    string
	DecidedAt   time.Time
	Label       string // stage, routing decision or primary strategy
	Reason      string
	Score       float64
	Secondary   float64 // potential, intent score or confidence
	PayloadJSON string
}

// ReversalOutcomeRecord represents a row from the dealsense_reversal_outcomes table.
type ReversalOutcomeRecord struct {
	OutcomeID    string
	DealID       string
	Outcome      OutcomeKind
	StrategyUsed *string
	Revenue      float64
	Notes        *string
	RecordedAt   time.Time
}
