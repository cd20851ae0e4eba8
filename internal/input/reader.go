// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

var (
	// ErrOpenInput is returned when an input file cannot be opened.
	ErrOpenInput = errors.New("error opening input file")
	// ErrReadInput is returned when reading from an input fails.
	ErrReadInput = errors.New("error reading input")
	// ErrNotBuffered is returned by Open for sources without a byte stream.
	ErrNotBuffered = errors.New("source is not a buffered input")
)

// FsFactory returns the filesystem input files are opened from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// StdinFactory returns the stream read for the stdin source.
var StdinFactory = func() io.Reader {
	return os.Stdin
}

// Reader yields the separator-delimited spans of one buffered source.
type Reader struct {
	source Source
	r      *bufio.Reader
	closer io.Closer
	sep    byte
	next   int
}

// Open opens src for reading spans delimited by sep.
func Open(src Source, sep byte) (*Reader, error) {
	rd := &Reader{source: src, sep: sep}

	switch src.Kind {
	case KindStdin:
		rd.r = bufio.NewReader(StdinFactory())
	case KindFile:
		f, err := FsFactory().Open(src.Name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpenInput, src.Name, err)
		}

		rd.r = bufio.NewReader(f)
		rd.closer = f
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotBuffered, src)
	}

	return rd, nil
}

// Next returns the next span without its separator and the span's location.
// A final span that is not terminated by the separator is still returned.
// At the end of the source it returns io.EOF.
func (rd *Reader) Next() ([]byte, Location, error) {
	span, err := rd.r.ReadBytes(rd.sep)

	switch {
	case err == nil:
		span = span[:len(span)-1]
	case errors.Is(err, io.EOF):
		if len(span) == 0 {
			return nil, Location{}, io.EOF
		}
	default:
		return nil, Location{}, fmt.Errorf("%w %s: %w", ErrReadInput, rd.source, err)
	}

	rd.next++

	return span, Location{Source: rd.source, Number: rd.next}, nil
}

// Close releases the underlying file. Stdin is left open.
func (rd *Reader) Close() error {
	if rd.closer == nil {
		return nil
	}

	return rd.closer.Close() //nolint:wrapcheck
}
