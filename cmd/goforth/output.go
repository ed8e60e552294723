package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles renders output for a particular writer, so that color is only used
// when that writer is a terminal that supports it.
type styles struct {
	// stack for the stack printed after each line
	stack lipgloss.Style

	// dim for trace and dump logs
	dim lipgloss.Style

	// err for error logs
	err lipgloss.Style
}

func newStyles(w io.Writer) styles {
	re := lipgloss.NewRenderer(w)
	return styles{
		stack: re.NewStyle().
			Foreground(lipgloss.Color("42")),
		dim: re.NewStyle().
			Foreground(lipgloss.Color("240")),
		err: re.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

// formatStack renders a stack bottom first, like "[1 2 3]".
func (st styles) formatStack(stack []int32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, val := range stack {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	}
	sb.WriteByte(']')
	return st.stack.Render(sb.String())
}

// decorateLog styles log lines by level, for logio.Logger.Decorate.
func (st styles) decorateLog(level, mess string) string {
	switch level {
	case "ERROR":
		return st.err.Render(mess)
	case "TRACE", "DUMP":
		return st.dim.Render(mess)
	default:
		return mess
	}
}
