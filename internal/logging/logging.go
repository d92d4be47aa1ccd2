package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger: JSON lines in release mode, a console writer otherwise.
func New(ginMode string) zerolog.Logger {
	return NewWithWriter(ginMode, os.Stdout)
}

func NewWithWriter(ginMode string, out io.Writer) zerolog.Logger {
	if ginMode == "release" {
		return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
