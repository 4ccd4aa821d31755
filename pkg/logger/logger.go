// Package logger builds the zerolog loggers used by the CLI and the HTTP
// server and adapts them to the calculator's printf-style interface.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // Enable pretty console output
	Output io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name onto zerolog, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Adapter exposes a zerolog.Logger through Debugf/Infof/Warnf/Errorf.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter tags every message with the given component name.
func NewAdapter(l zerolog.Logger, component string) *Adapter {
	if component != "" {
		l = l.With().Str("component", component).Logger()
	}
	return &Adapter{log: l}
}

func (a *Adapter) Debugf(format string, args ...any) { a.log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Infof(format string, args ...any)  { a.log.Info().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Errorf(format string, args ...any) { a.log.Error().Msg(fmt.Sprintf(format, args...)) }
