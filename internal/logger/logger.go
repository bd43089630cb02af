// Package logger provides zerolog helpers shared by feedrestore components.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// loggerContextKey is the context key for the logger.
type loggerContextKey struct{}

// WithLogger returns a context with the given logger.
func WithLogger(ctx context.Context, log *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// Log returns the logger from context for convenient inline logging.
// Returns a disabled logger if none is set, so callers can always chain.
func Log(ctx context.Context) *zerolog.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*zerolog.Logger); ok && log != nil {
		return log
	}
	nop := zerolog.Nop()
	return &nop
}

// Init creates a configured zerolog logger with console output on stderr.
func Init() zerolog.Logger {
	return New(os.Stderr)
}

// New creates a console logger writing to w. Colour is enabled only for terminals.
func New(w io.Writer) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// LevelForVerbosity maps a -v counter to a log level.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.InfoLevel
	case verbosity == 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
