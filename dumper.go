package forth

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a human readable description of the interpreter state to out:
// the value stack, followed by every dictionary entry in id order. Shadowed
// entries, which are no longer reachable by name but may still be referenced
// by other words, are listed under their shadow name, e.g. "foo#1".
func (fs *Interpreter) Dump(out io.Writer) error {
	dump := fsDumper{fs: fs, out: out}
	return dump.dump()
}

type fsDumper struct {
	fs  *Interpreter
	out io.Writer
	buf bytes.Buffer
	err error

	idWidth int
}

func (dump *fsDumper) dump() error {
	dump.line("# Forth Dump")
	dump.line("  stack: %v", dump.fs.stack)
	dump.line("  words: %v", dump.fs.dict.words())
	dump.dumpDict()
	return dump.err
}

func (dump *fsDumper) dumpDict() {
	n := dump.fs.dict.size()
	if dump.idWidth == 0 {
		dump.idWidth = len(strconv.Itoa(n))
	}
	for id := uint(1); id <= uint(n); id++ {
		body, _ := dump.fs.dict.lookupBodyByID(id)
		fmt.Fprintf(&dump.buf, "  @%-*v ", dump.idWidth, id)
		dump.formatName(id)
		dump.buf.WriteString(" :")
		for _, tok := range body {
			dump.buf.WriteByte(' ')
			dump.formatToken(tok)
		}
		dump.flush()
	}
}

func (dump *fsDumper) formatName(id uint) {
	name := dump.fs.dict.name(id)
	if isShadowName(name) {
		name = strings.TrimPrefix(name, shadowPrefix)
	}
	dump.buf.WriteString(name)
}

func (dump *fsDumper) formatToken(tok Token) {
	dump.buf.WriteString(tok.String())
	if tok.Kind == TokenRef {
		dump.buf.WriteByte('(')
		dump.formatName(tok.ID)
		dump.buf.WriteByte(')')
	}
}

func (dump *fsDumper) line(mess string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintf(&dump.buf, mess, args...)
	} else {
		dump.buf.WriteString(mess)
	}
	dump.flush()
}

func (dump *fsDumper) flush() {
	dump.buf.WriteByte('\n')
	if dump.err == nil {
		_, dump.err = dump.buf.WriteTo(dump.out)
	}
	dump.buf.Reset()
}
