// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the parx command-line interface (CLI).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/parx/internal/ctxlog"
	"github.com/matt-FFFFFF/parx/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	ctx, stop := signalbroker.NotifyContext(ctx)

	code := execute(ctx, os.Args, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// execute runs the root command and maps its error to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newRootCmd(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "parx: %s\n", err) //nolint:errcheck

	var ec cli.ExitCoder
	if errors.As(err, &ec) && ec.ExitCode() != 0 {
		return ec.ExitCode()
	}

	return 1
}
