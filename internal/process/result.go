// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"time"

	"github.com/matt-FFFFFF/parx/internal/template"
)

// Outcome classifies how a command ended.
type Outcome int

const (
	// OutcomeSuccess means the command exited with status zero.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the command ran but exited non-zero or could not be waited for.
	OutcomeFailure
	// OutcomeTimeout means the command was killed after exceeding the timeout.
	OutcomeTimeout
	// OutcomeSpawnError means the command could not be started.
	OutcomeSpawnError
	// OutcomeCancelled means the run was cancelled while the command was running.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeSpawnError:
		return "spawn_error"
	case OutcomeCancelled:
		return "cancelled"
	}

	return "unknown"
}

// Result describes one finished command.
type Result struct {
	Command  template.Command
	Outcome  Outcome
	ExitCode int // -1 when the process did not exit on its own
	PID      int // zero when the process was never started
	Duration time.Duration
	Error    error
}
