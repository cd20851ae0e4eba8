// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns termination signals into context cancellation.
//
// The first signal of each kind is only logged, so commands that are shutting
// down on their own can finish. A second signal of the same kind cancels the
// run context, which stops reading input and kills every running command.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/parx/internal/ctxlog"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// Broker delivers OS signals on a channel until it is stopped.
type Broker struct {
	ch   chan os.Signal
	once sync.Once
}

// New starts relaying sigs, or the termination signals when none are given.
func New(ctx context.Context, sigs ...os.Signal) *Broker {
	if len(sigs) == 0 {
		sigs = termSignals
	}

	b := &Broker{ch: make(chan os.Signal, len(sigs))}

	ctxlog.Debug(ctx, "relaying signals", "signals", sigs)
	signal.Notify(b.ch, sigs...)

	return b
}

// C returns the signal channel. It is closed by Stop.
func (b *Broker) C() <-chan os.Signal {
	return b.ch
}

// Stop stops relaying and closes the channel. It is safe to call more than once.
func (b *Broker) Stop() {
	b.once.Do(func() {
		signal.Stop(b.ch)
		close(b.ch)
	})
}

// NotifyContext returns a child of ctx that is cancelled on the second signal of
// the same kind. The stop function releases the signal handler and must be called.
func NotifyContext(ctx context.Context, sigs ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	b := New(ctx, sigs...)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, b.C(), cancel)
	}()

	return ctx, func() {
		cancel()
		b.Stop()
		<-done
	}
}
