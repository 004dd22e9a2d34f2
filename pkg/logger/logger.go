// Package logger builds the service-wide zerolog logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable output in development and JSON
// everywhere else.
func New(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
