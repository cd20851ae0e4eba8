// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"
)

const (
	// ArgsSeparator splits the command-line tokens into argument groups.
	ArgsSeparator = ":::"
	// StdinName is the input name that selects standard input.
	StdinName = "-"

	goosWindows          = "windows"
	binSh                = "/bin/sh"
	commandSwitchUnix    = "-c"
	commandSwitchWindows = "/C"
	winSystemRootEnv     = "SystemRoot"
)

var (
	// ErrInvalidJobs is returned when the concurrency limit is not a positive integer.
	ErrInvalidJobs = errors.New("jobs must be a positive integer")
	// ErrInvalidTimeout is returned when the timeout is not a positive number of seconds.
	ErrInvalidTimeout = errors.New("timeout must be a positive number of seconds")
	// ErrEmptyShellPath is returned when shell mode is enabled without a shell program.
	ErrEmptyShellPath = errors.New("shell mode requires a shell path")
)

// Config is the effective option set of one run. Treat it as read-only once validated.
type Config struct {
	Jobs                  int           // Maximum number of commands running at once.
	Timeout               time.Duration // Per-command timeout, zero means unbounded.
	Shell                 bool          // Run every command through ShellPath.
	ShellPath             string        // Shell program used when Shell is set.
	ShellFlag             string        // Flag that makes the shell run its next argument.
	NullSeparator         bool          // Input units are separated by NUL instead of newline.
	Regex                 string        // Optional capture pattern, empty when disabled.
	Inputs                []string      // Input files in order, "-" for stdin. Empty means stdin.
	CommandsFromArgs      bool          // Take the invocations from CommandAndInitialArgs.
	CommandAndInitialArgs []string      // Command template, or prefix ::: group ... in args mode.
	LogLevel              string        // Diagnostic log level name.
	LogFormat             string        // Diagnostic log format, pretty or json.
	MetricsFile           string        // Where to write Prometheus text metrics, empty to skip.
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Jobs:      runtime.NumCPU(),
		ShellPath: defaultShell(),
		ShellFlag: defaultShellFlag(),
	}
}

// Separator returns the byte that delimits input units.
func (c *Config) Separator() byte {
	if c.NullSeparator {
		return 0
	}

	return '\n'
}

// Validate checks the settings every consumer of Config relies on.
func (c *Config) Validate() error {
	if c.Jobs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, c.Jobs)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}

	if c.Shell && c.ShellPath == "" {
		return ErrEmptyShellPath
	}

	return nil
}

func defaultShell() string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return systemRoot + `\System32\cmd.exe`
	}

	return binSh
}

func defaultShellFlag() string {
	if runtime.GOOS == goosWindows {
		return commandSwitchWindows
	}

	return commandSwitchUnix
}
