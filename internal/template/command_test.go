// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	cmd, err := NewCommand([]string{"echo", "-n", "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo", cmd.Path)
	assert.Equal(t, []string{"-n", "hi"}, cmd.Args)
	assert.Equal(t, []string{"echo", "-n", "hi"}, cmd.Argv())

	cmd, err = NewCommand([]string{"true"})
	require.NoError(t, err)
	assert.Empty(t, cmd.Args)
}

func TestNewCommand_Empty(t *testing.T) {
	_, err := NewCommand(nil)
	require.ErrorIs(t, err, ErrEmptyCommand)

	_, err = NewCommand([]string{})
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestNewCommand_DoesNotAlias(t *testing.T) {
	tokens := []string{"echo", "a"}
	cmd, err := NewCommand(tokens)
	require.NoError(t, err)

	tokens[1] = "b"
	assert.Equal(t, []string{"a"}, cmd.Args)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "sleep 5", Command{Path: "sleep", Args: []string{"5"}}.String())
	assert.Equal(t, `/bin/sh -c "echo hi"`, Command{Path: "/bin/sh", Args: []string{"-c", "echo hi"}}.String())
	assert.Equal(t, `printf ""`, Command{Path: "printf", Args: []string{""}}.String())
}
