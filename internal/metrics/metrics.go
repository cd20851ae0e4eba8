// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics collects counters for one parx run and writes them in the
// Prometheus text format, suitable for the node_exporter textfile collector.
//
// Each run owns its own registry; nothing is registered globally.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parx"

// Labels for UnitsTotal.
const (
	UnitForwarded = "forwarded"
	UnitSkipped   = "skipped"
)

// ErrWriteMetrics is returned when the metrics file cannot be written.
var ErrWriteMetrics = errors.New("failed to write metrics file")

// Metrics holds the collectors of one run.
type Metrics struct {
	reg *prometheus.Registry

	CommandsStarted  prometheus.Counter
	CommandsFinished *prometheus.CounterVec
	PermitsInUse     prometheus.Gauge
	PermitsPeak      prometheus.Gauge
	PermitsLimit     prometheus.Gauge
	UnitsTotal       *prometheus.CounterVec
	SourceErrors     prometheus.Counter
	DurationSeconds  prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		CommandsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_started_total",
			Help:      "Commands handed to a process runner.",
		}),
		CommandsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_finished_total",
			Help:      "Commands finished, by outcome.",
		}, []string{"outcome"}),
		PermitsInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "permits_in_use",
			Help:      "Concurrency permits currently held.",
		}),
		PermitsPeak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "permits_in_use_peak",
			Help:      "Highest number of concurrency permits held at once.",
		}),
		PermitsLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "permits_limit",
			Help:      "Configured concurrency limit.",
		}),
		UnitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_units_total",
			Help:      "Input units read, by source and whether they produced work.",
		}, []string{"source", "state"}),
		SourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Input sources that could not be read.",
		}),
		DurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Wall time of finished commands.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}

	m.reg.MustRegister(
		m.CommandsStarted,
		m.CommandsFinished,
		m.PermitsInUse,
		m.PermitsPeak,
		m.PermitsLimit,
		m.UnitsTotal,
		m.SourceErrors,
		m.DurationSeconds,
	)

	return m
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// WriteFile atomically writes the current values to path.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteMetrics, path, err)
	}

	return nil
}
