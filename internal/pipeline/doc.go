// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline connects the input sources to the process runner.
//
// A Producer reads every source in order, expands each unit into commands and
// sends them as WorkItems over a bounded channel. An Executor receives them,
// takes one permit per command from a weighted semaphore sized to the concurrency
// limit, and runs each command on its own goroutine. Run wires the two together and
// returns once every source is exhausted and every dispatched command has finished.
package pipeline
