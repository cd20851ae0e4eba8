// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf)))
	logger.Warn("could not open input", "source", "missing.txt")

	out := buf.String()
	assert.Contains(t, out, "WARN: could not open input")
	assert.Contains(t, out, `"source"`)
	assert.Contains(t, out, `"missing.txt"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "\n"), "one line per record")
	assert.NotContains(t, out, "\033[", "colour must be off unless requested")
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))
	logger.Info("plain")

	assert.NotContains(t, buf.String(), "{")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf))).
		With("run", "r1").
		WithGroup("cmd")
	logger.Info("started", "pid", 42)

	out := buf.String()
	assert.Contains(t, out, `"run"`)
	assert.Contains(t, out, `"cmd"`)
	assert.Contains(t, out, `"pid"`)
}

func TestPrettyHandler_Concurrent(t *testing.T) {
	var (
		buf bytes.Buffer
		wg  sync.WaitGroup
	)

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("concurrent", "i", i)
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)

	for _, l := range lines {
		assert.Contains(t, l, "INFO: concurrent")
	}
}
