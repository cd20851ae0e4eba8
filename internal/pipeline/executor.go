// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/metrics"
	"github.com/matt-FFFFFF/parx/internal/process"
	"github.com/matt-FFFFFF/parx/internal/template"
	"github.com/sourcegraph/conc"
	"golang.org/x/sync/semaphore"
)

// CommandRunner runs a single command to completion.
// It is satisfied by *process.Runner.
type CommandRunner interface {
	Run(ctx context.Context, cmd template.Command) process.Result
}

// Executor dispatches WorkItems to a CommandRunner, at most limit at a time.
type Executor struct {
	runner  CommandRunner
	metrics *metrics.Metrics
	sem     *semaphore.Weighted
	limit   int64
	wg      conc.WaitGroup

	outstanding atomic.Int64
	inFlight    atomic.Int64
	peak        atomic.Int64
	summary     tally
}

// NewExecutor returns an Executor allowing limit concurrent commands.
func NewExecutor(limit int, runner CommandRunner, m *metrics.Metrics) *Executor {
	m.PermitsLimit.Set(float64(limit))

	return &Executor{
		runner:  runner,
		metrics: m,
		sem:     semaphore.NewWeighted(int64(limit)),
		limit:   int64(limit),
	}
}

// Run receives from in until it is closed, dispatching each item once a permit
// is available. It does not wait for dispatched commands; call Wait for that.
// If ctx is cancelled while waiting for a permit, the remaining items are dropped.
func (e *Executor) Run(ctx context.Context, in <-chan WorkItem) error {
	for item := range in {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			ctxlog.Debug(ctx, "stopped dispatching commands", "error", err)
			return err //nolint:wrapcheck
		}

		e.acquired()
		e.outstanding.Add(1)

		e.wg.Go(func() {
			defer e.outstanding.Add(-1)
			defer e.release()

			e.dispatch(ctx, item)
		})
	}

	return nil
}

// Wait blocks until every dispatched command has finished.
// A panic in a dispatched command is logged and returned as an error.
func (e *Executor) Wait(ctx context.Context) error {
	if r := e.wg.WaitAndRecover(); r != nil {
		err := r.AsError()
		ctxlog.Error(ctx, "command dispatch panicked", "error", err)

		return err //nolint:wrapcheck
	}

	return nil
}

// Outstanding returns the number of dispatched commands that have not finished.
func (e *Executor) Outstanding() int64 {
	return e.outstanding.Load()
}

// Peak returns the highest number of permits that were held at the same time.
func (e *Executor) Peak() int64 {
	return e.peak.Load()
}

// Summary returns the outcome counts so far.
func (e *Executor) Summary() Summary {
	return e.summary.snapshot()
}

func (e *Executor) dispatch(ctx context.Context, item WorkItem) {
	ctx = ctxlog.With(ctx, "location", item.Location.String())
	ctxlog.Debug(ctx, "dispatching command", "command", item.Command.String())

	e.summary.start()
	e.metrics.CommandsStarted.Inc()

	res := e.runner.Run(ctx, item.Command)

	e.summary.record(res.Outcome)
	e.metrics.CommandsFinished.WithLabelValues(res.Outcome.String()).Inc()
	e.metrics.DurationSeconds.Observe(res.Duration.Seconds())

	switch res.Outcome {
	case process.OutcomeSuccess:
		ctxlog.Debug(ctx, "command finished", "command", item.Command.String(), "duration", res.Duration)
	case process.OutcomeFailure:
		ctxlog.Debug(ctx, "command failed", "command", item.Command.String(), "exit_code", res.ExitCode)
	default:
		ctxlog.Debug(ctx, "command did not complete", "command", item.Command.String(),
			"outcome", res.Outcome.String(), "error", res.Error)
	}
}

func (e *Executor) acquired() {
	n := e.inFlight.Add(1)
	e.metrics.PermitsInUse.Inc()

	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}

	e.metrics.PermitsPeak.Set(float64(e.peak.Load()))
}

func (e *Executor) release() {
	e.inFlight.Add(-1)
	e.metrics.PermitsInUse.Dec()
	e.sem.Release(1)
}
