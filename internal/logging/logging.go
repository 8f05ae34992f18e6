// Package logging builds the diagnostic logger shared by all commands.
//
// Diagnostics go to stderr so stdout stays reserved for command output
// (secret values, JSON envelopes).
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logger type passed between packages.
type Logger = zerolog.Logger

// Options configures New.
type Options struct {
	Level   string // zerolog level name; empty or unknown means warn
	Verbose bool   // forces debug
	NoColor bool
}

// New returns a console logger writing to w.
func New(w io.Writer, opts Options) Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(name string) zerolog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return zerolog.Nop()
}
