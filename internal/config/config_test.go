// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, runtime.NumCPU(), c.Jobs)
	assert.Zero(t, c.Timeout)
	assert.False(t, c.Shell)
	assert.NotEmpty(t, c.ShellPath)
	assert.NotEmpty(t, c.ShellFlag)
	assert.Equal(t, byte('\n'), c.Separator())
	require.NoError(t, c.Validate())

	if runtime.GOOS != goosWindows {
		assert.Equal(t, "/bin/sh", c.ShellPath)
		assert.Equal(t, "-c", c.ShellFlag)
	}
}

func TestSeparator(t *testing.T) {
	c := Default()
	c.NullSeparator = true
	assert.Equal(t, byte(0), c.Separator())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "zero jobs", mutate: func(c *Config) { c.Jobs = 0 }, wantErr: ErrInvalidJobs},
		{name: "negative jobs", mutate: func(c *Config) { c.Jobs = -3 }, wantErr: ErrInvalidJobs},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "shell without path", mutate: func(c *Config) { c.Shell = true; c.ShellPath = "" }, wantErr: ErrEmptyShellPath},
		{name: "one job", mutate: func(c *Config) { c.Jobs = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	c := Default()

	err := c.Apply(Overrides{
		Jobs:           ptr(3),
		TimeoutSeconds: ptr(5),
		Shell:          ptr(true),
		ShellPath:      ptr("/bin/bash"),
		NullSeparator:  ptr(true),
		Regex:          ptr("(.*)"),
		Inputs:         []string{"a.txt", "-"},
		MetricsFile:    ptr("m.prom"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, c.Jobs)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.True(t, c.Shell)
	assert.Equal(t, "/bin/bash", c.ShellPath)
	assert.True(t, c.NullSeparator)
	assert.Equal(t, "(.*)", c.Regex)
	assert.Equal(t, []string{"a.txt", "-"}, c.Inputs)
	assert.Equal(t, "m.prom", c.MetricsFile)

	// a later layer with nil fields leaves everything alone
	require.NoError(t, c.Apply(Overrides{}))
	assert.Equal(t, 3, c.Jobs)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestApply_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		o       Overrides
		wantErr error
	}{
		{name: "jobs zero", o: Overrides{Jobs: ptr(0)}, wantErr: ErrInvalidJobs},
		{name: "timeout zero", o: Overrides{TimeoutSeconds: ptr(0)}, wantErr: ErrInvalidTimeout},
		{name: "timeout negative", o: Overrides{TimeoutSeconds: ptr(-1)}, wantErr: ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, Default().Apply(tt.o), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })

	defer stubs.Reset()

	require.NoError(t, afero.WriteFile(fs, "/parx.yaml", []byte(`
jobs: 2
timeout_seconds: 10
shell: true
regex: "(?P<a>.*)"
inputs:
  - one.txt
  - two.txt
log_level: debug
`), 0o644))

	o, err := LoadFile("/parx.yaml")
	require.NoError(t, err)

	c := Default()
	require.NoError(t, c.Apply(o))
	assert.Equal(t, 2, c.Jobs)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.True(t, c.Shell)
	assert.Equal(t, "(?P<a>.*)", c.Regex)
	assert.Equal(t, []string{"one.txt", "two.txt"}, c.Inputs)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })

	defer stubs.Reset()

	_, err := LoadFile("/missing.yaml")
	require.ErrorIs(t, err, ErrReadConfig)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("jobs: [1, 2"), 0o644))
	_, err = LoadFile("/bad.yaml")
	require.ErrorIs(t, err, ErrParseConfig)

	require.NoError(t, afero.WriteFile(fs, "/unknown.yaml", []byte("parallelism: 4\n"), 0o644))
	_, err = LoadFile("/unknown.yaml")
	require.ErrorIs(t, err, ErrParseConfig)
}
