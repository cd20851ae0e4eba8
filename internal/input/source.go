// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"fmt"

	"github.com/matt-FFFFFF/parx/internal/config"
)

// Kind tells the three kinds of Source apart.
type Kind int

const (
	// KindStdin reads from standard input.
	KindStdin Kind = iota
	// KindFile reads from a named file.
	KindFile
	// KindArgs takes its units from the command-line argument groups.
	KindArgs
)

// Source is one logical origin of input units.
type Source struct {
	Kind Kind
	Name string // file name, only set for KindFile
}

// Stdin is the standard input source.
var Stdin = Source{Kind: KindStdin}

// Args is the command-line arguments source.
var Args = Source{Kind: KindArgs}

// File returns the source for the named file.
func File(name string) Source {
	return Source{Kind: KindFile, Name: name}
}

// Buffered reports whether the source is read through a Reader.
func (s Source) Buffered() bool {
	return s.Kind == KindStdin || s.Kind == KindFile
}

func (s Source) String() string {
	switch s.Kind {
	case KindStdin:
		return "stdin"
	case KindFile:
		return s.Name
	case KindArgs:
		return "command_line_args"
	}

	return fmt.Sprintf("source(%d)", s.Kind)
}

// Sources returns the ordered source list for cfg.
// Arguments mode has exactly one source. Otherwise an empty input list means stdin
// and each "-" entry means stdin.
func Sources(cfg *config.Config) []Source {
	if cfg.CommandsFromArgs {
		return []Source{Args}
	}

	if len(cfg.Inputs) == 0 {
		return []Source{Stdin}
	}

	out := make([]Source, 0, len(cfg.Inputs))

	for _, name := range cfg.Inputs {
		if name == config.StdinName {
			out = append(out, Stdin)
			continue
		}

		out = append(out, File(name))
	}

	return out
}

// Location identifies an input unit for diagnostics.
type Location struct {
	Source Source
	Number int // 1-based within Source
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.Source, l.Number)
}
