// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Disabled(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Equal(t, "{0}", p.Process("{0}", "input line"))
	assert.Equal(t, "{0}", p.Process("{0}", "anything"))

	var zero Processor
	assert.Equal(t, "{1}", zero.Process("{1}", "x"))
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		token   string
		input   string
		want    string
	}{
		{
			name:    "numbered groups",
			pattern: "(.*),(.*)",
			token:   "{1} {2}",
			input:   "hello,world",
			want:    "hello world",
		},
		{
			name:    "named groups",
			pattern: "(?P<arg1>.*),(?P<arg2>.*)",
			token:   "{arg1} {arg2}",
			input:   "hello,world",
			want:    "hello world",
		},
		{
			name:    "whole match",
			pattern: "(?P<arg1>.*),(?P<arg2>.*),(?P<arg3>.*)",
			token:   "dollarzero={0}",
			input:   "foo,bar,baz",
			want:    "dollarzero=foo,bar,baz",
		},
		{
			name:    "no match leaves token unchanged",
			pattern: `^(\d+)$`,
			token:   "n={1}",
			input:   "abc",
			want:    "n={1}",
		},
		{
			name:    "undeclared name left as written",
			pattern: "(?P<a>.*)",
			token:   "{a}-{b}",
			input:   "x",
			want:    "x-{b}",
		},
		{
			name:    "group number out of range left as written",
			pattern: "(.*)",
			token:   "{1}{2}",
			input:   "x",
			want:    "x{2}",
		},
		{
			name:    "optional group that did not match is empty",
			pattern: "(?P<key>[a-z]+)(?:=(?P<val>.*))?",
			token:   "[{key}][{val}]",
			input:   "flag",
			want:    "[flag][]",
		},
		{
			name:    "dollar signs preserved",
			pattern: "(.*)",
			token:   "$HOME/{1}/$1",
			input:   "dir",
			want:    "$HOME/dir/$1",
		},
		{
			name:    "token without placeholders",
			pattern: "(.*)",
			token:   "echo",
			input:   "x",
			want:    "echo",
		},
		{
			name:    "unterminated brace",
			pattern: "(.*)",
			token:   "{1",
			input:   "x",
			want:    "{1",
		},
		{
			name:    "empty braces",
			pattern: "(.*)",
			token:   "{}",
			input:   "x",
			want:    "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pattern)
			require.NoError(t, err)
			assert.True(t, p.Enabled())
			assert.Equal(t, tt.want, p.Process(tt.token, tt.input))
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	p, err := New("(?Parg1>.*),(?P<arg2>.*)")
	require.ErrorIs(t, err, ErrInvalidPattern)
	assert.Nil(t, p)
}
