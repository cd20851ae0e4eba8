// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestOutput_Forward(t *testing.T) {
	var stdout, stderr bytes.Buffer

	o := NewOutput(&stdout, &stderr)
	require.NoError(t, o.Forward([]byte("out"), []byte("err")))
	require.NoError(t, o.Forward(nil, nil))

	assert.Equal(t, "out", stdout.String())
	assert.Equal(t, "err", stderr.String())
}

func TestOutput_ForwardIsAtomicPerCommand(t *testing.T) {
	var (
		stdout bytes.Buffer
		wg     sync.WaitGroup
	)

	o := NewOutput(&stdout, &bytes.Buffer{})
	chunk := strings.Repeat("x", 4096) + "\n"

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			_ = o.Forward([]byte(chunk), nil)
		}()
	}

	wg.Wait()

	for _, line := range strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n") {
		assert.Len(t, line, 4096)
	}
}

func TestOutput_Errors(t *testing.T) {
	o := NewOutput(brokenWriter{}, brokenWriter{})

	require.ErrorIs(t, o.Forward([]byte("a"), []byte("b")), ErrWriteOutput)
	require.ErrorIs(t, o.Notice("n"), ErrWriteOutput)
}

func TestOutput_Notice(t *testing.T) {
	var stdout bytes.Buffer

	o := NewOutput(&stdout, &bytes.Buffer{})
	require.NoError(t, o.Notice("parx: something"))
	assert.Equal(t, "parx: something\n", stdout.String())
}
