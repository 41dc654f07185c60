package db

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Manu343726/copro/pkg/hw/copro/codegen"
	"github.com/Manu343726/copro/pkg/hw/copro/database"
	"github.com/Manu343726/copro/pkg/logging"
)

var errNoEncodings = errors.New("no encodings table given, use --encodings or the 'encodings' config key")

// Builds the logger configured by the log.level and log.file keys
func NewLogger() (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, nil, err
	}

	return logging.New(logging.Options{
		Level: level,
		File:  viper.GetString("log.file"),
	})
}

func columns() database.Columns {
	result := database.DefaultColumns

	if first := viper.GetString("columns.first"); first != "" {
		result.First = first
	}
	if last := viper.GetString("columns.last"); last != "" {
		result.Last = last
	}

	return result
}

// Loads the database from the configured tables
func LoadDatabase(logger *slog.Logger) (*database.Database, error) {
	sources := database.Sources{
		Encodings:    viper.GetString("encodings"),
		Descriptions: viper.GetString("descriptions"),
		Timings:      viper.GetString("timings"),
	}

	if sources.Encodings == "" {
		return nil, errNoEncodings
	}

	return database.Load(sources, database.WithLogger(logger), database.WithColumns(columns()))
}

// Creates a header generator configured by the codegen.* keys
func NewGenerator(d *database.Database, logger *slog.Logger) (*codegen.Generator, error) {
	options := codegen.DefaultOptions

	if include := viper.GetString("codegen.include"); include != "" {
		options.Include = include
	}
	if generator := viper.GetString("codegen.generator"); generator != "" {
		options.Generator = generator
	}
	if preamble := viper.GetString("codegen.preamble"); preamble != "" {
		options.Preamble = strings.Split(strings.TrimRight(preamble, "\n"), "\n")
	}

	return codegen.NewGenerator(d, codegen.WithOptions(options), codegen.WithLogger(logger))
}

// Sets up logging and loads the database. The returned function releases the
// logger.
func load() (*database.Database, *slog.Logger, func(), error) {
	logger, closer, err := NewLogger()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	d, err := LoadDatabase(logger)
	if err != nil {
		closer.Close()
		return nil, nil, nil, fmt.Errorf("loading instruction database: %w", err)
	}

	return d, logger, func() { closer.Close() }, nil
}

// Opens the output file, or stdout if no file is given
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

// Writes to the given file, or to stdout if no file is given. The file is
// removed if write fails, so no partial output is left behind.
func WriteOutput(path string, write func(io.Writer) error) error {
	output, err := createOutput(path)
	if err != nil {
		return err
	}

	if err := write(output); err != nil {
		output.Close()
		if path != "" {
			os.Remove(path)
		}
		return err
	}

	return output.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
