// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package template

import (
	"slices"
	"strings"

	"github.com/matt-FFFFFF/parx/internal/capture"
	"github.com/matt-FFFFFF/parx/internal/config"
)

// commentPrefix marks input lines that are skipped.
const commentPrefix = "#"

// Expander is stateless after construction and safe for concurrent use.
type Expander struct {
	tokens  []string
	capture *capture.Processor
	b       builder
}

// New returns an Expander for cfg. A nil processor disables capture substitution.
func New(cfg *config.Config, proc *capture.Processor) *Expander {
	if proc == nil {
		proc = &capture.Processor{}
	}

	return &Expander{
		tokens:  slices.Clone(cfg.CommandAndInitialArgs),
		capture: proc,
		b: builder{
			shell:     cfg.Shell,
			shellPath: cfg.ShellPath,
			shellFlag: cfg.ShellFlag,
		},
	}
}

// ParseLine expands one input line. It returns false for blank lines, comment
// lines, and lines that expand to no tokens.
//
// Without command tokens the line itself is the command. With command tokens and
// no capture pattern the line's fields are appended to them. With a capture pattern
// every command token is substituted against the line and the line is not appended.
func (e *Expander) ParseLine(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Command{}, false
	}

	var tokens []string

	switch {
	case len(e.tokens) == 0:
		tokens = strings.Fields(line)
	case e.capture.Enabled():
		tokens = make([]string, len(e.tokens))
		for i, t := range e.tokens {
			tokens[i] = e.capture.Process(t, line)
		}
	default:
		tokens = slices.Concat(e.tokens, strings.Fields(line))
	}

	cmd, err := e.b.build(tokens)
	if err != nil {
		return Command{}, false
	}

	return cmd, true
}

// ExpandArgs returns one Command per combination of the argument groups in the
// configured tokens, in odometer order. The result is empty when there is no
// non-empty group.
func (e *Expander) ExpandArgs() []Command {
	prefix, groups := SplitGroups(e.tokens)

	combos := Product(groups)
	cmds := make([]Command, 0, len(combos))

	for _, combo := range combos {
		cmd, err := e.b.build(slices.Concat(prefix, combo))
		if err != nil {
			continue
		}

		cmds = append(cmds, cmd)
	}

	return cmds
}

// SplitGroups splits tokens on config.ArgsSeparator. Tokens before the first
// separator form the prefix. Each following run of tokens forms a group with
// duplicates removed; empty runs are dropped.
func SplitGroups(tokens []string) (prefix []string, groups [][]string) {
	first := slices.Index(tokens, config.ArgsSeparator)
	if first < 0 {
		return slices.Clone(tokens), nil
	}

	prefix = slices.Clone(tokens[:first])

	var current []string

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
		}

		current = nil
	}

	for _, t := range tokens[first+1:] {
		if t == config.ArgsSeparator {
			flush()
			continue
		}

		if !slices.Contains(current, t) {
			current = append(current, t)
		}
	}

	flush()

	return prefix, groups
}

// Product returns the Cartesian product of groups with the last group varying
// fastest. It returns nil when groups is empty or any group is empty.
func Product(groups [][]string) [][]string {
	if len(groups) == 0 {
		return nil
	}

	total := 1
	for _, g := range groups {
		if len(g) == 0 {
			return nil
		}

		total *= len(g)
	}

	out := make([][]string, 0, total)
	idx := make([]int, len(groups))

	for {
		combo := make([]string, len(groups))
		for i, g := range groups {
			combo[i] = g[idx[i]]
		}

		out = append(out, combo)

		// advance the odometer from the right
		pos := len(groups) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(groups[pos]) {
				break
			}

			idx[pos] = 0
			pos--
		}

		if pos < 0 {
			return out
		}
	}
}
