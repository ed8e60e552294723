// Package runeio reads program text rune by rune.
package runeio

import (
	"bufio"
	"io"
)

const byteOrderMark = '\uFEFF'

// Reader reads runes of program text from an underlying byte stream: a
// leading byte order mark is skipped, and each "\r\n" reads as one '\n'.
type Reader struct {
	br      *bufio.Reader
	started bool
}

// NewReader returns a Reader around r, reusing r's buffer if it is already a
// *bufio.Reader.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br}
}

// ReadRune reads the next rune; size counts every byte consumed for it.
func (rd *Reader) ReadRune() (r rune, size int, err error) {
	r, size, err = rd.br.ReadRune()
	if !rd.started {
		rd.started = true
		if err == nil && r == byteOrderMark {
			r, size, err = rd.br.ReadRune()
		}
	}
	if err == nil && r == '\r' {
		if next, _, nerr := rd.br.ReadRune(); nerr == nil {
			if next == '\n' {
				return '\n', size + 1, nil
			}
			rd.br.UnreadRune()
		}
	}
	return r, size, err
}
