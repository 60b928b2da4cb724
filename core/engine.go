package core

import (
	"time"

	"github.com/huangsam/dealsense/schema"
	"go.uber.org/zap"
)

// Engine runs the three decision pipelines against a validated configuration.
// It holds no mutable state, so one Engine can serve any number of goroutines.
type Engine struct {
	cfg schema.EngineConfig
	now func() time.Time
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithClock injects the clock used for "now" in every pipeline.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithFixedTime pins the engine clock to t. A zero t keeps the wall clock.
func WithFixedTime(t time.Time) Option {
	return func(e *Engine) {
		if !t.IsZero() {
			e.now = func() time.Time { return t }
		}
	}
}

// NewEngine validates cfg once and returns an engine that owns a private copy of it.
func NewEngine(cfg schema.EngineConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() schema.EngineConfig {
	return e.cfg.Clone()
}

// LearnFromOutcome is the extension point for adapting tables to reversal outcomes.
// It does not change the engine; outcomes are persisted by the analysis store.
func (e *Engine) LearnFromOutcome(outcome schema.ReversalOutcome) {
	zap.L().Debug("outcome received",
		zap.String("deal_id", outcome.DealID),
		zap.String("outcome", string(outcome.Outcome)))
}
