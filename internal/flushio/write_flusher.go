// Package flushio buffers output that must be flushed at known points, such
// as after printing the stack for each line of input.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is an io.Writer whose writes may be held until Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it already flushes, w with a no-op
// Flush if it is an in-memory buffer, or else a bufio.Writer around w.
// A nil w discards everything written.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return nopFlusher{io.Discard}
	case WriteFlusher:
		return impl
	case interface {
		io.Writer
		Len() int
		Reset()
	}:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// WriteFlushers tees writes into all of the given (non-nil) WriteFlushers, and
// flushes them all together. Returns nil if given none, or the only one given.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var tee teeFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case teeFlusher:
			tee = append(tee, impl...)
		default:
			tee = append(tee, wf)
		}
	}
	switch len(tee) {
	case 0:
		return nil
	case 1:
		return tee[0]
	}
	return tee
}

type teeFlusher []WriteFlusher

// Write writes p to every writer, even after one fails, returning the first
// error encountered.
func (tee teeFlusher) Write(p []byte) (int, error) {
	var first error
	for _, wf := range tee {
		n, err := wf.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if first == nil {
			first = err
		}
	}
	if first != nil {
		return 0, first
	}
	return len(p), nil
}

func (tee teeFlusher) Flush() error {
	var first error
	for _, wf := range tee {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
