// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/parx/internal/capture"
	"github.com/matt-FFFFFF/parx/internal/config"
	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/metrics"
	"github.com/matt-FFFFFF/parx/internal/process"
	"github.com/matt-FFFFFF/parx/internal/template"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig is returned by New when the configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Report describes a finished run.
type Report struct {
	Summary
	Produced     int
	PeakInFlight int64
	SourceErrors error // aggregated, nil when every source was read
}

// Pipeline is one configured run.
type Pipeline struct {
	cfg      *config.Config
	expander *template.Expander
	runner   CommandRunner
	metrics  *metrics.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunner replaces the process runner.
func WithRunner(r CommandRunner) Option {
	return func(p *Pipeline) {
		p.runner = r
	}
}

// WithMetrics sets the collectors the run updates.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New validates cfg and compiles the capture pattern. No input is read.
func New(cfg *config.Config, out *process.Output, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	proc, err := capture.New(cfg.Regex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p := &Pipeline{
		cfg:      cfg,
		expander: template.New(cfg, proc),
		runner:   process.NewRunner(cfg.Timeout, out),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.metrics == nil {
		p.metrics = metrics.New()
	}

	return p, nil
}

// Metrics returns the collectors updated by Run.
func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.metrics
}

// Run reads every source and executes the resulting commands.
// It returns once all sources are exhausted and all dispatched commands have finished.
// Failed sources and failed commands are part of the Report, not the error.
// The error is non-nil only when ctx was cancelled or a dispatch panicked.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	ch := make(chan WorkItem, p.cfg.Jobs)
	prod := NewProducer(p.cfg, p.expander, ch, p.metrics)
	exec := NewExecutor(p.cfg.Jobs, p.runner, p.metrics)

	ctxlog.Debug(ctx, "starting run", "jobs", p.cfg.Jobs, "timeout", p.cfg.Timeout,
		"shell", p.cfg.Shell, "commands_from_args", p.cfg.CommandsFromArgs)

	// The group shares ctx; a derived context would be cancelled on return and
	// kill commands still in flight.
	var g errgroup.Group

	g.Go(func() error { return prod.Run(ctx) })
	g.Go(func() error {
		err := exec.Run(ctx, ch)
		if err != nil {
			// unblock the producer if it is still sending
			for range ch { //nolint:revive
			}
		}

		return err
	})

	runErr := g.Wait()
	if err := exec.Wait(ctx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	rep := Report{
		Summary:      exec.Summary(),
		Produced:     prod.Produced(),
		PeakInFlight: exec.Peak(),
		SourceErrors: prod.Errors(),
	}

	args := append(rep.LogArgs(), "peak_in_flight", rep.PeakInFlight)
	if rep.SourceErrors != nil {
		args = append(args, "source_errors", rep.SourceErrors)
	}

	ctxlog.Info(ctx, "run complete", args...)

	return rep, runErr
}
