package cli

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether f is a terminal and the process is not
// running under CI. Callers use it to choose between decorated and plain
// output.
func IsInteractive(f *os.File) bool {
	if f == nil || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of the terminal behind f, or
// fallback when f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
