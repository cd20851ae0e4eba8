// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"sync/atomic"

	"github.com/matt-FFFFFF/parx/internal/process"
)

// Summary counts the commands of a run by outcome. Started includes commands
// that are still running.
type Summary struct {
	Started     int64
	Succeeded   int64
	Failed      int64
	TimedOut    int64
	SpawnErrors int64
	Cancelled   int64
}

// LogArgs returns the summary as slog key/value pairs.
func (s Summary) LogArgs() []any {
	return []any{
		"started", s.Started,
		"succeeded", s.Succeeded,
		"failed", s.Failed,
		"timed_out", s.TimedOut,
		"spawn_errors", s.SpawnErrors,
		"cancelled", s.Cancelled,
	}
}

type tally struct {
	started, succeeded, failed, timedOut, spawnErrors, cancelled atomic.Int64
}

func (t *tally) start() {
	t.started.Add(1)
}

func (t *tally) record(o process.Outcome) {
	switch o {
	case process.OutcomeSuccess:
		t.succeeded.Add(1)
	case process.OutcomeFailure:
		t.failed.Add(1)
	case process.OutcomeTimeout:
		t.timedOut.Add(1)
	case process.OutcomeSpawnError:
		t.spawnErrors.Add(1)
	case process.OutcomeCancelled:
		t.cancelled.Add(1)
	}
}

func (t *tally) snapshot() Summary {
	return Summary{
		Started:     t.started.Load(),
		Succeeded:   t.succeeded.Load(),
		Failed:      t.failed.Load(),
		TimedOut:    t.timedOut.Load(),
		SpawnErrors: t.spawnErrors.Load(),
		Cancelled:   t.cancelled.Load(),
	}
}
