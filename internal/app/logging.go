// Package app holds the wiring shared by the executables: logger setup
// and the event bus observers that outlive a single match.
package app

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
)

// SetupLogging sets the global level and returns a root logger writing to
// out. Output is JSON when configured so or when APP_ENV is production.
func SetupLogging(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" || os.Getenv("APP_ENV") == "production" {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
