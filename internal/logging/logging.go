// Package logging builds the zerolog logger used by card-fusion.
//
// Logs always go to stderr-like writers; stdout carries only the progress
// lines a user reads.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level ("error", "info",
// "debug", ...). With human set, records are rendered by zerolog's console
// writer instead of as JSON lines.
func New(level string, human bool, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("unknown log level %q: %w", level, err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
