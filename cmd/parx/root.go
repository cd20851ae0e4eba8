// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/parx"
	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	flagJobs             = "jobs"
	flagTimeoutSeconds   = "timeout-seconds"
	flagShell            = "shell"
	flagShellPath        = "shell-path"
	flagNullSeparator    = "null-separator"
	flagRegex            = "regex"
	flagInput            = "input"
	flagCommandsFromArgs = "commands-from-args"
	flagConfig           = "config"
	flagMetricsFile      = "metrics-file"
	flagLogLevel         = "log-level"
	flagLogFormat        = "log-format"
)

// newRootCmd builds the parx command. Flag parsing stops at the first
// positional argument so that flags meant for the command are left alone.
func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	stopAt := 1

	return &cli.Command{
		Name:      "parx",
		Usage:     "run commands in parallel",
		UsageText: "parx [options] [command [initial args...]] [::: args ...]",
		Description: `parx reads commands, or arguments for a command, from standard input,
from files, or from ::: groups on its own command line and runs them with
bounded concurrency. Each command's output is written as one block once the
command has finished.`,
		Version:      fmt.Sprintf("%s (commit: %s)", parx.Version, parx.Commit),
		Copyright:    "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Writer:       stdout,
		ErrWriter:    stderr,
		StopOnNthArg: &stopAt,
		// execute reports errors itself
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags:          rootFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return actionFunc(ctx, cmd, stdout, stderr)
		},
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        flagJobs,
			Aliases:     []string{"j"},
			Usage:       "Maximum number of commands to run at once",
			DefaultText: "number of CPUs",
		},
		&cli.IntFlag{
			Name:        flagTimeoutSeconds,
			Aliases:     []string{"t"},
			Usage:       "Kill a command that runs longer than this many seconds",
			DefaultText: "no timeout",
		},
		&cli.BoolFlag{
			Name:    flagShell,
			Aliases: []string{"s"},
			Usage:   "Run every command through the shell",
		},
		&cli.StringFlag{
			Name:        flagShellPath,
			Usage:       "Shell used with --shell",
			DefaultText: "/bin/sh, or cmd.exe on Windows",
			TakesFile:   true,
		},
		&cli.BoolFlag{
			Name:    flagNullSeparator,
			Aliases: []string{"z"},
			Usage:   "Input items are separated by NUL instead of newline",
		},
		&cli.StringFlag{
			Name:    flagRegex,
			Aliases: []string{"r"},
			Usage:   "Pattern applied to each input line; {1}, {name} in the command are replaced by its groups",
		},
		&cli.StringSliceFlag{
			Name:      flagInput,
			Aliases:   []string{"i"},
			Usage:     "Input file, - for standard input. May be repeated",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    flagCommandsFromArgs,
			Aliases: []string{"a"},
			Usage:   "Take the commands from ::: groups on the command line",
		},
		&cli.StringFlag{
			Name:      flagConfig,
			Aliases:   []string{"c"},
			Usage:     "YAML file with default options",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      flagMetricsFile,
			Usage:     "Write Prometheus text metrics to this file when the run ends",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "Diagnostic log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
		},
		&cli.StringFlag{
			Name:        flagLogFormat,
			Usage:       "Diagnostic log format: pretty or json",
			DefaultText: ctxlog.FormatPretty,
		},
	}
}
