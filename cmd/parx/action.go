// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/parx/internal/config"
	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/pipeline"
	"github.com/matt-FFFFFF/parx/internal/process"
	"github.com/urfave/cli/v3"
)

// runPipeline executes one validated configuration.
var runPipeline = func(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	p, err := pipeline.New(cfg, process.NewOutput(stdout, stderr))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	_, runErr := p.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := p.Metrics().WriteFile(cfg.MetricsFile); err != nil {
			ctxlog.Warn(ctx, "error writing metrics", "error", err)
		}
	}

	if runErr != nil {
		return cli.Exit("run stopped before completion: "+runErr.Error(), 1)
	}

	return nil
}

func actionFunc(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, err = setupLogging(ctx, cfg, stdout)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctxlog.Debug(ctx, "effective configuration", "config", cfg)

	return runPipeline(ctx, cfg, stdout, stderr)
}

// buildConfig layers the config file and then the flags that were set over the defaults.
func buildConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()

	if path := cmd.String(flagConfig); path != "" {
		o, err := config.LoadFile(path)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if err := cfg.Apply(o); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	if err := cfg.Apply(flagOverrides(cmd)); err != nil {
		return nil, err //nolint:wrapcheck
	}

	cfg.CommandAndInitialArgs = cmd.Args().Slice()
	cfg.CommandsFromArgs = cmd.Bool(flagCommandsFromArgs) ||
		slices.Contains(cfg.CommandAndInitialArgs, config.ArgsSeparator)

	if err := cfg.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return cfg, nil
}

func flagOverrides(cmd *cli.Command) config.Overrides {
	var o config.Overrides

	if cmd.IsSet(flagJobs) {
		v := int(cmd.Int(flagJobs))
		o.Jobs = &v
	}

	if cmd.IsSet(flagTimeoutSeconds) {
		v := int(cmd.Int(flagTimeoutSeconds))
		o.TimeoutSeconds = &v
	}

	if cmd.IsSet(flagInput) {
		o.Inputs = cmd.StringSlice(flagInput)
	}

	o.Shell = boolIfSet(cmd, flagShell)
	o.NullSeparator = boolIfSet(cmd, flagNullSeparator)
	o.ShellPath = stringIfSet(cmd, flagShellPath)
	o.Regex = stringIfSet(cmd, flagRegex)
	o.LogLevel = stringIfSet(cmd, flagLogLevel)
	o.LogFormat = stringIfSet(cmd, flagLogFormat)
	o.MetricsFile = stringIfSet(cmd, flagMetricsFile)

	return o
}

func boolIfSet(cmd *cli.Command, name string) *bool {
	if !cmd.IsSet(name) {
		return nil
	}

	v := cmd.Bool(name)

	return &v
}

func stringIfSet(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}

	v := cmd.String(name)

	return &v
}

// setupLogging applies the configured level and format and tags the logger with a run id.
func setupLogging(ctx context.Context, cfg *config.Config, w io.Writer) (context.Context, error) {
	if cfg.LogLevel != "" {
		lvl, err := ctxlog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return ctx, err //nolint:wrapcheck
		}

		ctxlog.LevelVar.Set(lvl)
	}

	logger, err := ctxlog.NewLogger(cfg.LogFormat, w)
	if err != nil {
		return ctx, err //nolint:wrapcheck
	}

	return ctxlog.New(ctx, logger.With("run", uuid.NewString())), nil
}
