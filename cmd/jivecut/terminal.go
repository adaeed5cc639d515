package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is an interactive terminal. The progress UI
// needs one; pipes and log files get plain lines.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useTUI decides whether a command should start the bubbletea UI
func useTUI(noTUI bool) bool {
	return !noTUI && isTerminal(os.Stdout)
}
