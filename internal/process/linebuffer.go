// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"bytes"
	"sync"
)

// lineBuffer collects a child's output stream and remembers its last complete line.
// It is safe for concurrent use.
type lineBuffer struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	lastLine []byte
	lineFrom int // offset in buf where the current partial line starts
}

// Write implements io.Writer.
func (lb *lineBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	n, _ := lb.buf.Write(p) // bytes.Buffer.Write only fails by panicking

	b := lb.buf.Bytes()
	if i := bytes.LastIndexByte(b[lb.lineFrom:], '\n'); i >= 0 {
		end := lb.lineFrom + i
		start := bytes.LastIndexByte(b[:end], '\n') + 1

		lb.lastLine = append(lb.lastLine[:0], bytes.TrimSuffix(b[start:end], []byte("\r"))...)
		lb.lineFrom = end + 1
	}

	return n, nil
}

// Bytes returns everything written so far. The slice must not be modified.
func (lb *lineBuffer) Bytes() []byte {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	return lb.buf.Bytes()
}

// LastLine returns the last complete line, cut to maxLength bytes with "..."
// appended when longer. A maxLength of zero or less means no limit.
func (lb *lineBuffer) LastLine(maxLength int) string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if maxLength > 3 && len(lb.lastLine) > maxLength {
		return string(lb.lastLine[:maxLength-3]) + "..."
	}

	return string(lb.lastLine)
}
