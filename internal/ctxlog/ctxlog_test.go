// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		ctx           context.Context
		expectDefault bool
	}{
		{
			name:          "context with logger",
			ctx:           New(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
			expectDefault: false,
		},
		{
			name:          "context without logger",
			ctx:           context.Background(),
			expectDefault: true,
		},
		{
			name:          "context with nil logger",
			ctx:           New(context.Background(), nil),
			expectDefault: true,
		},
		{
			name:          "context with wrong type value",
			ctx:           context.WithValue(context.Background(), loggerKey{}, "not a logger"),
			expectDefault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Logger(tt.ctx)
			require.NotNil(t, logger)

			if tt.expectDefault {
				assert.Same(t, DefaultLogger, logger)
			} else {
				assert.NotSame(t, DefaultLogger, logger)
			}
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := New(context.Background(), logger)

	tests := []struct {
		name     string
		logFunc  func(context.Context, string, ...any)
		expected string
	}{
		{name: "debug", logFunc: Debug, expected: "DEBUG"},
		{name: "info", logFunc: Info, expected: "INFO"},
		{name: "warn", logFunc: Warn, expected: "WARN"},
		{name: "error", logFunc: Error, expected: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(ctx, "message "+tt.name, "key", "value")

			out := buf.String()
			assert.Contains(t, out, tt.expected)
			assert.Contains(t, out, "message "+tt.name)
			assert.Contains(t, out, "key=value")
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	ctx := New(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "run", "abc")

	Info(ctx, "hello")
	assert.Contains(t, buf.String(), "run=abc")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: " Warn ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "", want: slog.LevelWarn, wantErr: true},
		{in: "loud", want: slog.LevelWarn, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLevel)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "DEBUG")
	assert.Equal(t, slog.LevelDebug, logLevelFromEnv())

	t.Setenv(LogLevelEnvVar, "nonsense")
	assert.Equal(t, slog.LevelWarn, logLevelFromEnv())

	t.Setenv(LogLevelEnvVar, "")
	assert.Equal(t, slog.LevelWarn, logLevelFromEnv())
}

func TestNewLogger(t *testing.T) {
	orig := LevelVar.Level()
	defer LevelVar.Set(orig)

	LevelVar.Set(slog.LevelInfo)

	var buf bytes.Buffer

	logger, err := NewLogger(FormatJSON, &buf)
	require.NoError(t, err)
	logger.Info("json line", "n", 1)
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON output, got %q", buf.String())
	assert.Contains(t, buf.String(), `"msg":"json line"`)

	buf.Reset()

	logger, err = NewLogger("", &buf)
	require.NoError(t, err)
	logger.Info("pretty line")
	assert.Contains(t, buf.String(), "INFO: pretty line")

	_, err = NewLogger("xml", &buf)
	require.ErrorIs(t, err, ErrUnknownFormat)
}
