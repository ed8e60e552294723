// Command goforth evaluates programs in a tiny FORTH, line by line, printing
// the stack after each line.
//
// Usage:
//
//	goforth [flags] [FILE...]
//	goforth munge --key KEY [IN [OUT]]
//
// With no FILE, or when FILE is "-", standard input is read. Each line is
// evaluated separately: an error is reported along with its location, the
// rest of that line is abandoned, and evaluation continues with the next
// line. The exit status is non-zero if any line failed.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/jcorbin/goforth/internal/panicerr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, newStyles(os.Stderr).err.Render(formatError(err)))
		os.Exit(1)
	}
}

// formatError renders an error that was not already logged; a recovered
// panic also gets its stack trace.
func formatError(err error) string {
	switch {
	case panicerr.IsPanic(err):
		return fmt.Sprintf("ERROR: %v\n%s", err, panicerr.PanicStack(err))
	case panicerr.IsExit(err):
		return fmt.Sprintf("ERROR: %v, output may be incomplete", err)
	default:
		return fmt.Sprintf("ERROR: %v", err)
	}
}

// exitCode is returned when errors have already been reported, and only the
// process exit status remains to be set.
type exitCode int

func (code exitCode) Error() string { return fmt.Sprintf("exit status %d", int(code)) }
