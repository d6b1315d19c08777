package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger tagged with the service name. Development mode
// writes human-readable console output.
func New(service string, w io.Writer, production bool) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}

	if !production {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}
