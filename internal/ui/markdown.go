package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownMargin is subtracted from the terminal width when wrapping.
const MarkdownMargin = 4

// RenderMarkdown renders markdown for the terminal, wrapped to width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	if width > MarkdownMargin*4 {
		width -= MarkdownMargin
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	// glamour pads with blank lines; keep exactly one trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}
