// Package logging provides the structured logger shared by the matinspect
// commands, using zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

func init() {
	// Default to JSON logging at info level
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	logger = &l
}

// Init configures the global logger. level is a zerolog level name such as
// "debug" or "warn"; human selects the console writer instead of JSON.
func Init(level string, human bool) error {
	return InitWriter(os.Stderr, level, human)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string, human bool) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var output zerolog.LevelWriter
	if human {
		output = zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}}
	} else {
		output = zerolog.LevelWriterAdapter{Writer: w}
	}

	l := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	logger = &l
	return nil
}

// L returns the base logger.
func L() *zerolog.Logger {
	return logger
}

// WithCommand returns a logger with the command field set.
func WithCommand(name string) zerolog.Logger {
	return logger.With().Str("command", name).Logger()
}

// SetLogger allows overriding the global logger (useful for testing).
func SetLogger(l zerolog.Logger) {
	logger = &l
}
