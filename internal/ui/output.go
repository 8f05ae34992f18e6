// Package ui holds terminal styling and rendering helpers.
package ui

import "fmt"

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Success prefixes msg with a check mark.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Error prefixes msg with a cross.
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warning prefixes msg with a warning sign.
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Warningf formats and prefixes with a warning sign.
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Header renders a section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// Name renders a service or account name.
func Name(name string) string {
	return Accent.Render(name)
}

// Hint renders muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}
