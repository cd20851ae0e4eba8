// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default handler prints one human-readable line per record to stdout.
// The level comes from the PARX_LOG_LEVEL environment variable and defaults to WARN,
// so a normal run prints nothing but the output of the commands it runs.
package ctxlog
