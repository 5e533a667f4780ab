// Package logging builds the zerolog logger shared by the front ends.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where log lines go.
type Options struct {
	Level   string    // trace, debug, info, warn, error; anything else is info
	Console io.Writer // human-readable coloured output, nil to disable
	File    io.Writer // human-readable plain output, nil to disable
	JSON    io.Writer // raw JSON lines, nil to disable
}

// ParseLevel maps a config string onto a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a timestamped logger writing to every configured sink.
// With no sinks it returns a disabled logger.
func New(opts Options) zerolog.Logger {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.RFC3339,
		})
	}
	if opts.File != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.File,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if opts.JSON != nil {
		writers = append(writers, opts.JSON)
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	lvl := ParseLevel(opts.Level)
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()
	logger.Debug().Str("loglevel", lvl.String()).Msg("Logging set up")
	return logger
}

// OpenFile opens path for appending, moving any previous log aside to
// path+".old" first.
func OpenFile(path string) (*os.File, error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
}
