// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process runs a single command as a child process.
//
// The child's stdout and stderr are captured and, once it exits, copied verbatim to
// the engine's own streams as one unit so that output of concurrently running
// commands never interleaves within a stream. A child that outlives the configured
// timeout is killed together with its process group, and a one-line notice is
// written to stdout in place of its output.
package process
