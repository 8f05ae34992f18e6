// Package prompt talks to the user's terminal: TTY detection, hidden secret
// input and yes/no confirmation.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/binbandit/keychainctl/internal/ui"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Terminal reads from In and writes prompts to Out.
type Terminal struct {
	In  *os.File
	Out *os.File
}

// NewTerminal returns a Terminal on the process's stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

// Interactive reports whether stdin is a terminal.
func (t *Terminal) Interactive() bool {
	return IsTerminal(t.In)
}

// ReadSecret shows label on stderr and reads one line without echo.
func (t *Terminal) ReadSecret(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	data, err := term.ReadPassword(t.In.Fd())
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Confirm asks a yes/no question that defaults to no.
//
// With a terminal on both ends a huh confirm field is shown. Otherwise one
// line is read from In and only "y" or "yes" (any case) counts as consent;
// EOF is a refusal.
func (t *Terminal) Confirm(question string) (bool, error) {
	if IsTerminal(t.In) && IsTerminal(t.Out) {
		confirmed := false
		err := huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return confirmed, err
	}
	return confirmLine(t.In, t.Out, question)
}

func confirmLine(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s %s: ", question, ui.Hint("[y/N]"))

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return Accepts(response), nil
}

// Accepts reports whether response is a yes.
func Accepts(response string) bool {
	answer := strings.TrimSpace(response)
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}
