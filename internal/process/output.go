// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"errors"
	"io"
	"sync"
)

// ErrWriteOutput is returned when forwarding child output fails.
var ErrWriteOutput = errors.New("failed to write command output")

// Output serialises writes to the engine's stdout and stderr.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// NewOutput returns an Output writing to the given streams.
func NewOutput(stdout, stderr io.Writer) *Output {
	return &Output{stdout: stdout, stderr: stderr}
}

// Forward writes one command's captured streams, stdout first.
func (o *Output) Forward(stdout, stderr []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error

	if len(stdout) > 0 {
		if _, err := o.stdout.Write(stdout); err != nil {
			errs = append(errs, err)
		}
	}

	if len(stderr) > 0 {
		if _, err := o.stderr.Write(stderr); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrWriteOutput}, errs...)...)
	}

	return nil
}

// Notice writes a line of engine text to stdout.
func (o *Output) Notice(line string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := io.WriteString(o.stdout, line+"\n"); err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}
