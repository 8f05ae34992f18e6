package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultAccent is the accent color when none is configured.
const DefaultAccent = "#A78BFA"

var (
	// Accent highlights service and account names.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent))

	// Muted is for hints and secondary columns.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold is for headers.
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureAccent switches the accent color. Values are ANSI codes
// ("0".."255") or hex ("#RRGGBB"); "none" disables the accent. Invalid values
// leave the default in place and report false.
func ConfigureAccent(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "":
		return true
	case "none", "off":
		Accent = lipgloss.NewStyle()
		return true
	}

	if strings.HasPrefix(value, "#") {
		if len(value) != 7 {
			return false
		}
		if _, err := strconv.ParseUint(value[1:], 16, 32); err != nil {
			return false
		}
	} else if n, err := strconv.Atoi(value); err != nil || n < 0 || n > 255 {
		return false
	}

	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(value))
	return true
}
