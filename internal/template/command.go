// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package template

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyCommand is returned when a Command would be built from no tokens.
var ErrEmptyCommand = errors.New("command has no tokens")

// Command is an executable and its arguments. Args does not include Path.
type Command struct {
	Path string
	Args []string
}

// NewCommand builds a Command from tokens[0] and the remaining tokens.
func NewCommand(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return Command{}, ErrEmptyCommand
	}

	return Command{
		Path: tokens[0],
		Args: slices.Clone(tokens[1:]),
	}, nil
}

// Argv returns the full argument vector including the executable.
func (c Command) Argv() []string {
	return slices.Concat([]string{c.Path}, c.Args)
}

// String renders the command for diagnostics. Arguments containing whitespace
// or nothing at all are quoted.
func (c Command) String() string {
	argv := c.Argv()
	out := make([]string, len(argv))

	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = strconv.Quote(a)
		}

		out[i] = a
	}

	return strings.Join(out, " ")
}
