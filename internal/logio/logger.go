package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger implements a leveled logging facility around an output stream.
type Logger struct {
	sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int

	// Decorate, if set, is applied to every formatted message before it is
	// written, e.g. to colorize it by level.
	Decorate func(level, mess string) string
}

// SetOutput sets the logger's output stream, closing any prior stream that
// implements io.Closer.
func (log *Logger) SetOutput(out io.Writer) {
	log.Lock()
	defer log.Unlock()
	if cl, ok := log.output.(io.Closer); ok {
		cl.Close()
	}
	log.output = out
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Errorf is like `Printf("ERROR", ...)` but additionally retains state so that
// ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf("ERROR", mess, args...); err != nil {
		log.reportError(err)
	}
	if log.exitCode == 0 {
		log.exitCode = 1
	}
}

// Printf prints a line to the output stream like "level: message...\n".
// Reports any io error as an "ERROR" level log, and retains similar state for ExitCode().
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.reportError(err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	if level != "" {
		mess = level + ": " + mess
	}
	if log.Decorate != nil {
		mess = log.Decorate(level, mess)
	}
	log.buf.WriteString(mess)
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		log.buf.Reset()
		return nil
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}

// reportError makes a best effort to note a failure of the output stream
// itself; its exit code is distinct from that of ordinary error logs.
func (log *Logger) reportError(err error) {
	log.buf.Reset()
	log.printf("ERROR", "%+v", err)
	log.exitCode = 2
}
