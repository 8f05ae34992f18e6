package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when stdout is not a terminal.
const DefaultTermWidth = 100

// StdoutIsTTY reports whether stdout is a terminal.
func StdoutIsTTY() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// TermWidth returns the stdout terminal width, or DefaultTermWidth.
func TermWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return DefaultTermWidth
}
