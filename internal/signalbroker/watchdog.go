// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/parx/internal/ctxlog"
)

// Watch reads sigs until it is closed or ctx is done.
// The second signal of any one kind calls cancel and returns.
func Watch(ctx context.Context, sigs <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigs:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "received second signal, stopping all commands", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Warn(ctx, "received signal, send again to stop all commands", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
