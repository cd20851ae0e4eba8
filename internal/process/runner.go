// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/template"
)

// waitDelay bounds how long Wait keeps reading the pipes of a dead child whose
// descendants still hold them open.
const waitDelay = 2 * time.Second

// lastLineLength bounds the output line logged for a command that timed out.
const lastLineLength = 120

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrTimeoutExceeded is returned when the command was killed by the timeout.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
	// ErrCancelled is returned when the run was cancelled while the command was running.
	ErrCancelled = errors.New("run cancelled")
)

// Runner spawns commands. It is safe for concurrent use.
type Runner struct {
	Timeout time.Duration // zero means no timeout
	Output  *Output
}

// NewRunner returns a Runner forwarding to out.
func NewRunner(timeout time.Duration, out *Output) *Runner {
	return &Runner{Timeout: timeout, Output: out}
}

// Run executes cmd and waits for it to finish, time out, or for ctx to be cancelled.
// Failures are reported through the returned Result and the context logger; they
// never panic and never stop other commands.
func (r *Runner) Run(ctx context.Context, cmd template.Command) Result {
	logger := ctxlog.Logger(ctx).With("command", cmd.String())
	res := Result{Command: cmd, ExitCode: -1}

	var stdout, stderr lineBuffer

	c := exec.Command(cmd.Path, cmd.Args...) //nolint:gosec
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = waitDelay
	setProcAttr(c)

	start := time.Now()

	if err := c.Start(); err != nil {
		res.Outcome = OutcomeSpawnError
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		logger.Warn("error spawning command", "error", err)

		return res
	}

	res.PID = c.Process.Pid
	logger.Debug("process started", "pid", res.PID)

	done := make(chan error, 1)

	go func() {
		done <- c.Wait()
	}()

	var timeout <-chan time.Time

	if r.Timeout > 0 {
		timer := time.NewTimer(r.Timeout)
		defer timer.Stop()

		timeout = timer.C
	}

	select {
	case err := <-done:
		res.Duration = time.Since(start)
		r.finish(ctx, &res, c, err, stdout.Bytes(), stderr.Bytes())

	case <-timeout:
		r.kill(ctx, c, done)
		res.Duration = time.Since(start)
		res.Outcome = OutcomeTimeout
		res.Error = ErrTimeoutExceeded
		logger.Info("command timed out", "pid", res.PID, "last_stdout", stdout.LastLine(lastLineLength),
			"last_stderr", stderr.LastLine(lastLineLength))

		if err := r.Output.Notice(fmt.Sprintf("parx: timeout after %s running command: %s", r.Timeout, cmd)); err != nil {
			logger.Warn("error writing timeout notice", "error", err)
		}

	case <-ctx.Done():
		r.kill(ctx, c, done)
		res.Duration = time.Since(start)
		res.Outcome = OutcomeCancelled
		res.Error = errors.Join(ErrCancelled, ctx.Err())
		logger.Info("command killed, run cancelled")
	}

	return res
}

func (r *Runner) finish(ctx context.Context, res *Result, c *exec.Cmd, waitErr error, stdout, stderr []byte) {
	logger := ctxlog.Logger(ctx).With("command", res.Command.String())

	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError

	switch {
	case waitErr == nil:
		res.Outcome = OutcomeSuccess
	case errors.As(waitErr, &exitErr):
		res.Outcome = OutcomeFailure
		res.Error = waitErr
		logger.Debug("command exited non-zero", "exitCode", res.ExitCode)
	default:
		res.Outcome = OutcomeFailure
		res.Error = waitErr
		logger.Warn("error waiting for command", "error", waitErr)
	}

	if err := r.Output.Forward(stdout, stderr); err != nil {
		logger.Warn("error forwarding command output", "error", err)
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "duration", res.Duration)
}

// kill terminates the child and its group and waits for Wait to return, so no
// process or goroutine outlives Run.
func (r *Runner) kill(ctx context.Context, c *exec.Cmd, done <-chan error) {
	logger := ctxlog.Logger(ctx)

	if err := killTree(c); err != nil {
		logger.Error("process kill error", "pid", c.Process.Pid, "error", err)
	}

	<-done

	logger.Debug("process killed", "pid", c.Process.Pid)
}
