package forth

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by Eval wrap one of these; match them with errors.Is.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownWord    = errors.New("unknown word")
	ErrInvalidWord    = errors.New("invalid word")
)

var kinds = [...]error{
	ErrDivisionByZero,
	ErrStackUnderflow,
	ErrUnknownWord,
	ErrInvalidWord,
}

// ErrorKind returns which of the Err* values err wraps, or nil if none.
func ErrorKind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// haltError carries an evaluation fault up through the panic that aborts the
// current Eval; it never escapes the package.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// unitError annotates an error with the input unit being processed.
func unitError(err error, unit string) error {
	if unit == "" {
		return err
	}
	return errors.WithMessagef(err, "%q", unit)
}
