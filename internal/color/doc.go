// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decorates diagnostic text with ANSI escape codes.
// Colour is disabled when NO_COLOR is set, forced when FORCE_COLOR is set,
// and otherwise follows whether stdout is a terminal (golang.org/x/term).
// Child process output is never passed through this package.
package color
