package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf-style logging function into an io.Writer, logging
// each complete line written; e.g. Logger.Leveledf("DUMP") turns a multi-line
// dump into one log entry per line.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	partial bytes.Buffer
}

// Write logs every line completed by p, retaining any trailing partial line
// until a later Write or Close completes it. Never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		line, rest, found := bytes.Cut(p, []byte{'\n'})
		if !found {
			lw.partial.Write(p)
			return n, nil
		}
		if lw.partial.Len() > 0 {
			lw.partial.Write(line)
			line = lw.partial.Bytes()
		}
		lw.Logf("%s", bytes.TrimSuffix(line, []byte{'\r'}))
		lw.partial.Reset()
		p = rest
	}
}

// Close logs any final partial line.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.partial.Len() > 0 {
		lw.Logf("%s", lw.partial.Bytes())
		lw.partial.Reset()
	}
	return nil
}
