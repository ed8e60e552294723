package fileinput

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/goforth/internal/runeio"
)

// Location names an a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked to
// facilitate user feedback.
//
// Every stream ends a line: if a stream's final line lacks a line feed, one
// is read in its place before moving on to the next stream.
type Input struct {
	cur   io.Reader
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadRune reads one rune from the current input stream, appending it into the
// current Scan line, and rolling Scan over to Last after line feed.
// Returns io.EOF only after the last stream in Queue is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}

		r, n, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				in.nextLine()
			} else {
				in.Scan.WriteRune(r)
			}
			return r, n, nil
		}

		partial := in.Scan.Len() > 0
		in.closeIn()
		if err != io.EOF {
			return 0, 0, err
		}
		if partial {
			return '\n', 0, nil
		}
	}
}

// ReadLine reads runes through the next line feed, returning the line read
// without it. Afterwards, Last holds the line and its location.
func (in *Input) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return "", err
		}
		if r == '\n' {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// Close closes the current stream, and any remaining in Queue, if they
// implement io.Closer.
func (in *Input) Close() (err error) {
	if in.cur != nil {
		if cl, ok := in.cur.(io.Closer); ok {
			err = cl.Close()
		}
		in.cur, in.rr = nil, nil
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() {
	if in.Scan.Len() > 0 {
		in.nextLine()
	}
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.rr = nil, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.cur = r
	in.rr = runeio.NewReader(r)
	in.Scan.Reset()
	in.Scan.Name = nameOf(r)
	in.Scan.Line = 1
	return true
}

// NamedReader attaches a name to r, for use in Location.
func NamedReader(name string, r io.Reader) io.Reader {
	if cl, ok := r.(io.Closer); ok {
		return namedReadCloser{namedReader{r, name}, cl}
	}
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

type namedReadCloser struct {
	namedReader
	io.Closer
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
