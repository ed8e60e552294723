package forth

import (
	"io"
	"strings"
	"unicode"
)

// Interpreter evaluates program text against a persistent value stack and
// word dictionary. The zero value is ready to use, but New should be
// preferred so that options are applied. An Interpreter is not safe for
// concurrent use.
type Interpreter struct {
	logging

	in   io.RuneReader
	unit string // last unit scanned, for error context

	stack []int32
	dict  dictionary

	frames []frame // expansion frames, retained between calls for reuse
}

// frame tracks progress through one word body during expansion.
type frame struct {
	body []Token
	at   int
}

// New creates an Interpreter with an empty stack and dictionary.
func New(opts ...Option) *Interpreter {
	var fs Interpreter
	fs.apply(opts...)
	return &fs
}

// Eval evaluates one chunk of whitespace separated program text. Input is
// case-insensitive. The first error aborts evaluation and is returned; any
// effect on the stack or dictionary before that point is kept.
func (fs *Interpreter) Eval(input string) error {
	return fs.EvalReader(strings.NewReader(input))
}

// EvalReader is like Eval, but reads program text from r until io.EOF.
// Units are read one at a time, so a definition may span any number of
// lines. Read errors other than io.EOF abort evaluation like any other error.
func (fs *Interpreter) EvalReader(r io.RuneReader) (err error) {
	defer func(in io.RuneReader) { fs.in = in }(fs.in)
	fs.in = r
	fs.unit = ""
	defer fs.recoverHalt(&err)
	for {
		unit, ok := fs.scan()
		if !ok {
			return nil
		}
		fs.interpret(unit)
	}
}

// Stack returns a copy of the value stack, bottom first.
func (fs *Interpreter) Stack() []int32 {
	return append([]int32(nil), fs.stack...)
}

// Words returns the names of all currently defined words, sorted.
func (fs *Interpreter) Words() []string {
	return fs.dict.words()
}

// Clone returns an independent copy of the interpreter's state. Word bodies
// are immutable, so they are shared rather than copied. Callers who need an
// all-or-nothing Eval can clone first, and discard the clone on error.
func (fs *Interpreter) Clone() *Interpreter {
	return &Interpreter{
		logging: fs.logging,
		stack:   fs.Stack(),
		dict:    fs.dict.clone(),
	}
}

func (fs *Interpreter) halt(err error) {
	fs.logf("#", "halt %q: %v", fs.unit, err)
	panic(haltError{err})
}

func (fs *Interpreter) haltif(err error) {
	if err != nil {
		fs.halt(err)
	}
}

func (fs *Interpreter) recoverHalt(err *error) {
	if e := recover(); e != nil {
		herr, ok := e.(haltError)
		if !ok {
			panic(e)
		}
		*err = unitError(herr.error, fs.unit)
	}
}

// interpret runs a single unit of input in normal (not defining) state.
func (fs *Interpreter) interpret(unit string) {
	if ref, known := fs.dict.reference(unit); known {
		fs.logf(">", "%v -> %v", unit, ref)
		fs.exec(ref)
		return
	}
	tok, ok := Tokenize(unit)
	if !ok {
		fs.halt(ErrUnknownWord)
	}
	fs.logf(">", "%v", tok)
	if tok.Kind == TokenBegin {
		fs.define()
		return
	}
	fs.exec(tok)
}

// define captures a definition, from just after its ":" through its ";".
//
// Any defined word used within the definition is captured by reference to
// its current body, rather than by name, so that redefining that word later
// does not change the meaning of this one.
func (fs *Interpreter) define() {
	name, ok := fs.scan()
	if !ok {
		fs.halt(ErrInvalidWord)
	}

	var body []Token
	for {
		unit, ok := fs.scan()
		if !ok {
			fs.unit = name
			fs.halt(ErrInvalidWord)
		}
		if ref, known := fs.dict.reference(unit); known {
			body = append(body, ref)
			continue
		}
		tok, ok := Tokenize(unit)
		if !ok || tok.Kind == TokenBegin {
			fs.halt(ErrInvalidWord)
		}
		if tok.Kind == TokenEnd {
			break
		}
		body = append(body, tok)
	}

	fs.unit = name
	id, err := fs.dict.define(name, body)
	fs.haltif(err)
	fs.logf(":", "%v @%v %v", name, id, body)
}

// exec executes a token against the stack. References are expanded
// iteratively: each body being run gets a frame, and the innermost frame
// supplies the next token until all frames are exhausted.
func (fs *Interpreter) exec(tok Token) {
	frames := fs.frames[:0]
	defer func() { fs.frames = frames[:0] }()

	for {
		switch tok.Kind {
		case TokenInt:
			fs.push(tok.Value)

		case TokenRef:
			body, ok := fs.dict.lookupBodyByID(tok.ID)
			if !ok {
				fs.halt(ErrUnknownWord)
			}
			if fs.logfn != nil {
				fs.logf("@", "%v%v %v -- s:%v", strings.Repeat("  ", len(frames)), tok, fs.dict.name(tok.ID), fs.stack)
			}
			frames = append(frames, frame{body: body})

		default:
			var op func(*Interpreter)
			if tok.Kind < tokenMax {
				op = opTable[tok.Kind]
			}
			if op == nil {
				fs.halt(ErrUnknownWord)
			}
			op(fs)
		}

		for {
			i := len(frames) - 1
			if i < 0 {
				return
			}
			if top := &frames[i]; top.at < len(top.body) {
				tok = top.body[top.at]
				top.at++
				break
			}
			frames = frames[:i]
		}
	}
}

// scan reads the next whitespace delimited unit from input, lowercased.
// Returns false once input is exhausted.
func (fs *Interpreter) scan() (string, bool) {
	var sb strings.Builder
	for {
		r, _, err := fs.in.ReadRune()
		if err == io.EOF {
			return "", false
		}
		fs.haltif(err)
		if !unicode.IsSpace(r) {
			sb.WriteRune(unicode.ToLower(r))
			break
		}
	}
	for {
		r, _, err := fs.in.ReadRune()
		if err == io.EOF || err == nil && unicode.IsSpace(r) {
			break
		}
		fs.haltif(err)
		sb.WriteRune(unicode.ToLower(r))
	}
	fs.unit = sb.String()
	return fs.unit, true
}
