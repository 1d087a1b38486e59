// Package concurrency provides the bounded worker pool the storage layer's
// bulk-loading operations use to fan out independent per-item work (spec
// §5's concurrency model): an injected Pool interface rather than a
// package-level singleton, so callers choose their own concurrency budget
// per call instead of sharing one process-wide pool (see the "global
// stateful thread pools" design note in SPEC_FULL.md).
package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool runs fn closures with bounded concurrency, collecting their errors.
// Wait blocks until every submitted closure has returned (or the pool's
// context is cancelled by the first error), then returns the first error
// encountered, if any.
type Pool interface {
	Go(fn func(ctx context.Context) error)
	Wait() error
}

// pool implements Pool on top of errgroup.Group (error propagation and
// context cancellation) and semaphore.Weighted (the hard concurrency cap),
// the same pairing the erigon example repo's own pipeline stages use
// golang.org/x/sync for.
type pool struct {
	ctx context.Context
	g   *errgroup.Group
	sem *semaphore.Weighted
}

// New builds a Pool bounded to maxConcurrency simultaneous goroutines.
// maxConcurrency <= 0 is treated as 1 (no concurrency, but still routed
// through the same code path rather than special-cased).
func New(ctx context.Context, maxConcurrency int64) Pool {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	return &pool{ctx: gctx, g: g, sem: semaphore.NewWeighted(maxConcurrency)}
}

// Go submits fn for execution once a concurrency slot is free. fn receives
// the pool's (possibly already-cancelled) context so it can exit early
// after a sibling's error cancels the group.
func (p *pool) Go(fn func(ctx context.Context) error) {
	p.g.Go(func() error {
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return err
		}
		defer p.sem.Release(1)
		return fn(p.ctx)
	})
}

// Wait blocks until every Go'd closure has returned, returning the first
// non-nil error (if any); subsequent closures still run to completion.
func (p *pool) Wait() error {
	return p.g.Wait()
}
