// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/parx/internal/config"
	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/input"
	"github.com/matt-FFFFFF/parx/internal/metrics"
	"github.com/matt-FFFFFF/parx/internal/template"
)

// WorkItem is one command on its way to the executor.
type WorkItem struct {
	Command  template.Command
	Location input.Location
}

// Producer feeds WorkItems from the configured sources into a channel.
type Producer struct {
	cfg     *config.Config
	exp     *template.Expander
	out     chan<- WorkItem
	metrics *metrics.Metrics

	mu     sync.Mutex
	errs   *multierror.Error
	nItems int
}

// NewProducer returns a Producer that sends to out and closes it when done.
func NewProducer(cfg *config.Config, exp *template.Expander, out chan<- WorkItem, m *metrics.Metrics) *Producer {
	return &Producer{cfg: cfg, exp: exp, out: out, metrics: m}
}

// Run processes every source in order and closes the output channel.
// A source that fails is reported, recorded in Errors and skipped.
// Run only returns an error when ctx is cancelled.
func (p *Producer) Run(ctx context.Context) error {
	defer close(p.out)

	for _, src := range input.Sources(p.cfg) {
		var err error

		if src.Buffered() {
			err = p.processBuffered(ctx, src)
		} else {
			err = p.processArgs(ctx)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr //nolint:wrapcheck
		}

		if err != nil {
			ctxlog.Warn(ctx, "error processing input", "source", src.String(), "error", err)
			p.metrics.SourceErrors.Inc()
			p.addError(err)
		}
	}

	ctxlog.Debug(ctx, "all inputs processed", "commands", p.Produced())

	return nil
}

// Errors returns the aggregated source errors, or nil.
func (p *Producer) Errors() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.errs.ErrorOrNil()
}

// Produced returns the number of WorkItems sent so far.
func (p *Producer) Produced() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.nItems
}

func (p *Producer) addError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errs = multierror.Append(p.errs, err)
}

func (p *Producer) processBuffered(ctx context.Context, src input.Source) error {
	ctxlog.Debug(ctx, "begin processing input", "source", src.String())

	rd, err := input.Open(src, p.cfg.Separator())
	if err != nil {
		return err //nolint:wrapcheck
	}

	units := p.metrics.UnitsTotal.MustCurryWith(map[string]string{"source": src.String()})
	spans := readSpans(ctx, rd)

	for {
		var sp span

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case sp = <-spans:
		}

		if errors.Is(sp.err, io.EOF) {
			break
		}

		if sp.err != nil {
			return sp.err
		}

		if !utf8.Valid(sp.data) {
			ctxlog.Debug(ctx, "skipping input that is not valid text", "location", sp.loc.String())
			units.WithLabelValues(metrics.UnitSkipped).Inc()

			continue
		}

		cmd, ok := p.exp.ParseLine(string(sp.data))
		if !ok {
			units.WithLabelValues(metrics.UnitSkipped).Inc()
			continue
		}

		units.WithLabelValues(metrics.UnitForwarded).Inc()

		if err := p.send(ctx, WorkItem{Command: cmd, Location: sp.loc}); err != nil {
			return err
		}
	}

	ctxlog.Debug(ctx, "end processing input", "source", src.String())

	return nil
}

// span is one read result handed from readSpans to the producer.
type span struct {
	data []byte
	loc  input.Location
	err  error
}

// readSpans reads rd on its own goroutine so that a read blocked on an idle
// stream does not hold up cancellation. The goroutine closes rd and ends after
// the first error, or once ctx is done and the blocked read returns.
func readSpans(ctx context.Context, rd *input.Reader) <-chan span {
	ch := make(chan span)

	go func() {
		defer rd.Close() //nolint:errcheck

		for {
			data, loc, err := rd.Next()

			select {
			case ch <- span{data: data, loc: loc, err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return ch
}

// processArgs generates every combination up front and sends them in order.
func (p *Producer) processArgs(ctx context.Context) error {
	cmds := p.exp.ExpandArgs()
	ctxlog.Debug(ctx, "expanded command line arguments", "commands", len(cmds))

	units := p.metrics.UnitsTotal.WithLabelValues(input.Args.String(), metrics.UnitForwarded)

	for i, cmd := range cmds {
		units.Inc()

		item := WorkItem{
			Command:  cmd,
			Location: input.Location{Source: input.Args, Number: i + 1},
		}
		if err := p.send(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

// send blocks until the executor has room or ctx is cancelled.
func (p *Producer) send(ctx context.Context, item WorkItem) error {
	select {
	case p.out <- item:
		p.mu.Lock()
		p.nItems++
		p.mu.Unlock()

		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}
