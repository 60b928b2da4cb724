package core

import (
	"context"
	"sync"

	"github.com/huangsam/dealsense/schema"
)

// BatchItem is the outcome of one entity in a batch. Exactly one of Result or Err is set.
type BatchItem[T any] struct {
	Index    int    `json:"index"`
	EntityID string `json:"entity_id"`
	Result   *T     `json:"result,omitempty"`
	Err      error  `json:"-"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether the item carries a result.
func (b BatchItem[T]) OK() bool {
	return b.Err == nil && b.Result != nil
}

// ClassifyDormantLeads classifies leads concurrently and returns one item per lead in input order.
func (e *Engine) ClassifyDormantLeads(ctx context.Context, leads []schema.DormantLead, workers int) []BatchItem[schema.Classification] {
	return runBatch(ctx, workers, leads,
		func(l schema.DormantLead) string { return l.ID },
		e.ClassifyDormantLead)
}

// ScoreAndRouteLeads scores leads concurrently and returns one item per lead in input order.
func (e *Engine) ScoreAndRouteLeads(ctx context.Context, leads []schema.InboundLead, workers int) []BatchItem[schema.ScoreResult] {
	return runBatch(ctx, workers, leads,
		func(l schema.InboundLead) string { return l.ID },
		e.ScoreAndRouteLead)
}

// AnalyzeLostDeals analyzes deals concurrently and returns one item per deal in input order.
func (e *Engine) AnalyzeLostDeals(ctx context.Context, deals []schema.LostDeal, workers int) []BatchItem[schema.ReversalOpportunity] {
	return runBatch(ctx, workers, deals,
		func(d schema.LostDeal) string { return d.ID },
		e.AnalyzeLostDeal)
}

// runBatch processes all inputs in parallel using a worker pool.
// Each worker writes to a unique index of the result slice, so no extra locking is needed.
// Once ctx is done, remaining inputs are marked with the context error instead of processed.
func runBatch[In, Out any](ctx context.Context, workers int, inputs []In, idOf func(In) string, fn func(In) (Out, error)) []BatchItem[Out] {
	items := make([]BatchItem[Out], len(inputs))
	if len(inputs) == 0 {
		return items
	}
	workers = max(1, min(workers, len(inputs)))

	indexCh := make(chan int, len(inputs))
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for i := range indexCh {
				item := BatchItem[Out]{Index: i, EntityID: idOf(inputs[i])}
				if err := ctx.Err(); err != nil {
					item.Err = err
				} else if result, err := fn(inputs[i]); err != nil {
					item.Err = err
				} else {
					item.Result = &result
				}
				if item.Err != nil {
					item.Error = item.Err.Error()
				}
				items[i] = item
			}
		})
	}

	for i := range inputs {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return items
}

// Results returns the successful results of a batch in input order.
func Results[T any](items []BatchItem[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.OK() {
			out = append(out, *item.Result)
		}
	}
	return out
}

// Failures returns the failed items of a batch in input order.
func Failures[T any](items []BatchItem[T]) []BatchItem[T] {
	var out []BatchItem[T]
	for _, item := range items {
		if !item.OK() {
			out = append(out, item)
		}
	}
	return out
}
