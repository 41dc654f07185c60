// Package logging builds the slog loggers used by the copro commands: human
// readable text on the terminal, plus an optional JSON log file.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"github.com/Manu343726/copro/pkg/utils"
)

var ErrInvalidLevel = errors.New("invalid log level")

type Options struct {
	Level slog.Level
	// Terminal output. Defaults to stderr.
	Output io.Writer
	// If set, records are also written as JSON to this file
	File string
}

// Parses a level name ("debug", "info", "warn", "error"), case insensitive.
// An empty name is the info level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return level, utils.MakeError(ErrInvalidLevel, "'%v'", name)
	}

	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Creates a logger from the given options. The returned closer releases the
// log file and must be called once the logger is no longer used.
func New(options Options) (*slog.Logger, io.Closer, error) {
	output := options.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOptions := &slog.HandlerOptions{Level: options.Level}
	handlers := []slog.Handler{slog.NewTextHandler(output, handlerOptions)}
	var closer io.Closer = nopCloser{}

	if options.File != "" {
		file, err := os.OpenFile(options.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}

		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
