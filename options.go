package forth

import (
	"fmt"
	"strings"
)

// Option configures an Interpreter created by New.
type Option interface{ apply(fs *Interpreter) }

func (fs *Interpreter) apply(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(fs)
		}
	}
}

// WithLogf enables trace logging of every unit, definition, word expansion,
// and halt through the given printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithStack pushes the given values onto the stack, bottom first.
func WithStack(values ...int32) Option { return stackOption(values) }

type withLogfn func(mess string, args ...interface{})
type stackOption []int32

func (logfn withLogfn) apply(fs *Interpreter) {
	fs.logfn = logfn
}

func (values stackOption) apply(fs *Interpreter) {
	fs.stack = append(fs.stack, values...)
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

// logf formats a trace message with a single mark rune leading it, e.g.
// ">" for input, ":" for definitions, "@" for expansion, and "#" for halts.
func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, strings.TrimRight(mess, "\n"))
}
