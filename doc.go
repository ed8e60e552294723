/* Package forth implements a very small FORTH: just enough of one to do
integer arithmetic on a stack, and to define new words in terms of old ones.

Program text is a sequence of whitespace separated units, and is not case
sensitive. Each unit is one of:

	123 -45          integer literals, pushed onto the stack
	+ - * /          binary integer operations on the stack
	dup drop swap    stack manipulation
	over
	: name ... ;     define a new word
	name             run a defined word

There are no other words: no output, no control flow, no memory. Values are
32-bit signed integers, and arithmetic wraps around on overflow.

Defined words

A definition compiles its body once, when the ";" is read. Any defined word
used in the body is compiled as a reference to that word's definition as of
that moment, so redefining a word never changes the meaning of words already
defined in terms of it:

	: foo 1 ;
	: bar foo 1 + ;
	: foo 2 ;
	bar              ( leaves 2, not 3 )

A word may even be redefined in terms of itself:

	: foo foo 1 + ;  ( now leaves 2 )

Built-in words may be redefined the same way (even ":" and ";", to ill
effect); numbers may not.

Errors

Eval stops at the first error, returning one wrapping ErrDivisionByZero,
ErrStackUnderflow, ErrUnknownWord, or ErrInvalidWord. Everything done before
the error stays done; use Clone beforehand to get all-or-nothing behavior.
*/
package forth
