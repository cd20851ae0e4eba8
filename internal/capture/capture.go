// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package capture substitutes {ref} placeholders in command tokens with groups
// captured from an input line.
//
// References are either a group number ({0} is the whole match, {1} the first group)
// or a group name declared with (?P<name>...). They are rewritten to regexp's
// native ${ref} syntax and expanded with Regexp.ExpandString.
package capture

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPattern is returned by New when the pattern does not compile.
var ErrInvalidPattern = errors.New("invalid capture pattern")

// Processor holds zero or one compiled pattern. The zero value is a valid,
// disabled Processor.
type Processor struct {
	re *regexp.Regexp
}

// New compiles pattern. An empty pattern yields a disabled Processor.
func New(pattern string) (*Processor, error) {
	if pattern == "" {
		return &Processor{}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return &Processor{re: re}, nil
}

// Enabled reports whether a pattern is configured.
func (p *Processor) Enabled() bool {
	return p != nil && p.re != nil
}

// Process expands the placeholders of token against input.
// The token is returned unchanged when no pattern is configured or the pattern
// does not match. A reference to a group the pattern does not declare is left as
// written. A declared group that did not take part in the match expands to "".
func (p *Processor) Process(token, input string) string {
	if !p.Enabled() || !strings.Contains(token, "{") {
		return token
	}

	match := p.re.FindStringSubmatchIndex(input)
	if match == nil {
		return token
	}

	return string(p.re.ExpandString(nil, p.template(token), input, match))
}

// template rewrites {ref} to ${ref} for every ref the pattern can resolve and
// escapes every other '$' so ExpandString leaves it alone.
func (p *Processor) template(token string) string {
	var sb strings.Builder

	sb.Grow(len(token) + 8)

	for i := 0; i < len(token); i++ {
		c := token[i]

		switch c {
		case '$':
			sb.WriteString("$$")
			continue
		case '{':
			end := strings.IndexByte(token[i+1:], '}')
			if end >= 0 {
				ref := token[i+1 : i+1+end]
				if p.resolves(ref) {
					sb.WriteString("${")
					sb.WriteString(ref)
					sb.WriteByte('}')

					i += end + 1

					continue
				}
			}
		}

		sb.WriteByte(c)
	}

	return sb.String()
}

func (p *Processor) resolves(ref string) bool {
	if ref == "" {
		return false
	}

	if n, err := strconv.Atoi(ref); err == nil {
		return n >= 0 && n <= p.re.NumSubexp() && ref == strconv.Itoa(n)
	}

	return p.re.SubexpIndex(ref) >= 0
}
