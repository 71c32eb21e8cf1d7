// Package logging builds the application logger.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to out at the given level.
// Unknown levels fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: out}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
