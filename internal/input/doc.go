// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package input reads delimited units from the configured input sources.
//
// A Source is standard input, a named file, or the command-line arguments. Buffered
// sources (stdin and files) are read through a Reader that yields one byte span per
// separator-terminated unit, numbered from 1 within that source.
package input
