// Package xorcism implements a trivial stream cipher: data is XORed against a
// key, repeated as many times as needed.
//
// A Munger is stateful: it remembers where it is in the key between calls, so
// munging a buffer in two halves gives the same result as munging it whole.
// Since XOR is its own inverse, a fresh Munger with the same key undoes the
// work of another.
package xorcism

import "io"

// Munger XORs data against a cyclically repeated key.
type Munger struct {
	key []byte
	pos int
}

// New returns a Munger positioned at the start of a copy of key. An empty
// key munges data unchanged.
func New(key []byte) *Munger {
	return &Munger{key: append([]byte(nil), key...)}
}

// Munge is a one-shot convenience for New(key).Munge(data).
func Munge(key, data []byte) []byte {
	return New(key).Munge(data)
}

// MungeInPlace XORs each byte of data with the next byte of the key.
func (m *Munger) MungeInPlace(data []byte) {
	if len(m.key) == 0 {
		return
	}
	for i := range data {
		data[i] ^= m.key[m.pos]
		if m.pos++; m.pos == len(m.key) {
			m.pos = 0
		}
	}
}

// Munge returns a munged copy of data, leaving data itself untouched.
func (m *Munger) Munge(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	m.MungeInPlace(out)
	return out
}

// Reader returns a reader that munges everything read from r. It shares
// key position with m.
func (m *Munger) Reader(r io.Reader) io.Reader { return reader{m, r} }

// Writer returns a writer that munges everything before writing it to w. It
// shares key position with m.
func (m *Munger) Writer(w io.Writer) io.Writer { return &writer{m: m, w: w} }

type reader struct {
	m *Munger
	r io.Reader
}

func (mr reader) Read(p []byte) (n int, err error) {
	n, err = mr.r.Read(p)
	mr.m.MungeInPlace(p[:n])
	return n, err
}

type writer struct {
	m   *Munger
	w   io.Writer
	buf []byte
}

// Write advances the key position only past the n bytes actually written,
// so that a caller may retry p[n:] after a short write.
func (mw *writer) Write(p []byte) (n int, err error) {
	start := mw.m.pos
	mw.buf = append(mw.buf[:0], p...)
	mw.m.MungeInPlace(mw.buf)
	n, err = mw.w.Write(mw.buf)
	if k := len(mw.m.key); k > 0 {
		mw.m.pos = (start + n) % k
	}
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}
