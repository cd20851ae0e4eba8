// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package template

import "strings"

// builder finishes a token list into a Command, optionally wrapping it in a shell.
type builder struct {
	shell     bool
	shellPath string
	shellFlag string
}

// build returns the Command for tokens. In shell mode the tokens are joined with
// single spaces and passed as one argument after the shell flag.
func (b builder) build(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return Command{}, ErrEmptyCommand
	}

	if !b.shell {
		return NewCommand(tokens)
	}

	return NewCommand([]string{b.shellPath, b.shellFlag, strings.Join(tokens, " ")})
}
