package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the service logger: JSON in production, console output elsewhere.
func New(env string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.With().
		Timestamp().
		Str("service", "vehicle-service").
		Logger()
}
